package notify

import (
	"context"

	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

// LogSink writes transitions to the structured log. It is the default
// when no Telegram credentials are configured, and useful in
// development.
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, event tracking.Event) error {
	s.logger.InfoContext(ctx, FormatEvent(event),
		"kind", string(event.Kind),
		"participant", event.Participant,
		"match", event.EventID,
	)
	return nil
}
