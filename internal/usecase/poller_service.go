package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

// NotificationSink delivers one detected transition to its destination.
// Implementations must be safe for concurrent use.
type NotificationSink interface {
	Deliver(ctx context.Context, event tracking.Event) error
}

// PollerService drives the poll loop: every interval it rebuilds the
// day's catalog snapshot, runs transition detection and hands the
// resulting events to the sink.
type PollerService struct {
	catalog  *CatalogService
	tracker  *TrackerService
	sink     NotificationSink
	logger   *logging.Logger
	interval time.Duration
	workers  int
	now      func() time.Time
	location *time.Location
}

func NewPollerService(
	catalog *CatalogService,
	tracker *TrackerService,
	sink NotificationSink,
	logger *logging.Logger,
	interval time.Duration,
	workers int,
) *PollerService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		loc = time.UTC
	}
	return &PollerService{
		catalog:  catalog,
		tracker:  tracker,
		sink:     sink,
		logger:   logger,
		interval: interval,
		workers:  workers,
		now:      time.Now,
		location: loc,
	}
}

// Run polls until ctx is cancelled. The first tick fires immediately;
// a tick that overruns the interval delays the next one rather than
// overlapping with it.
func (s *PollerService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "poller started", "interval", s.interval.String())
	for {
		if err := s.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				s.logger.InfoContext(ctx, "poller stopped")
				return nil
			}
			s.logger.ErrorContext(ctx, "poll tick failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "poller stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one full poll pass. Sink failures are logged per event and
// never fail the tick; detection failures do.
func (s *PollerService) Tick(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PollerService.Tick")
	defer span.End()

	date := CatalogDate(s.now().In(s.location))
	if _, err := s.catalog.Refresh(ctx, date); err != nil {
		return fmt.Errorf("refresh catalog date=%s: %w", date, err)
	}

	events, err := s.tracker.Observe(ctx, date)
	if err != nil {
		return fmt.Errorf("observe transitions: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	return s.deliver(ctx, events)
}

// deliver fans out across participants while keeping each
// participant's events in emission order, so a home goal never arrives
// after the away goal from the same tick.
func (s *PollerService) deliver(ctx context.Context, events []tracking.Event) error {
	order := make([]string, 0, len(events))
	byParticipant := make(map[string][]tracking.Event, len(events))
	for _, event := range events {
		if _, seen := byParticipant[event.Participant]; !seen {
			order = append(order, event.Participant)
		}
		byParticipant[event.Participant] = append(byParticipant[event.Participant], event)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create delivery pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, participant := range order {
		queue := byParticipant[participant]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			for _, event := range queue {
				if err := s.sink.Deliver(ctx, event); err != nil {
					s.logger.ErrorContext(ctx, "notification delivery failed",
						"kind", string(event.Kind),
						"participant", event.Participant,
						"match", event.EventID,
						"error", err,
					)
				}
			}
		}); err != nil {
			wg.Done()
			s.logger.ErrorContext(ctx, "submit delivery task failed", "error", err)
		}
	}
	wg.Wait()
	return nil
}
