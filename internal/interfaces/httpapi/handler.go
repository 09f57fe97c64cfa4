package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
	"github.com/riskibarqy/btts-tracker/internal/usecase"
)

type Handler struct {
	catalogService    *usecase.CatalogService
	trackerService    *usecase.TrackerService
	assignmentService *usecase.AssignmentService
	manualService     *usecase.ManualMatchService
	pollerService     *usecase.PollerService
	leagueRepo        league.Repository
	logger            *logging.Logger
	location          *time.Location
	now               func() time.Time
}

func NewHandler(
	catalogService *usecase.CatalogService,
	trackerService *usecase.TrackerService,
	assignmentService *usecase.AssignmentService,
	manualService *usecase.ManualMatchService,
	pollerService *usecase.PollerService,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		loc = time.UTC
	}

	return &Handler{
		catalogService:    catalogService,
		trackerService:    trackerService,
		assignmentService: assignmentService,
		manualService:     manualService,
		pollerService:     pollerService,
		leagueRepo:        leagueRepo,
		logger:            logger,
		location:          loc,
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestDate resolves the ?date=YYYYMMDD query parameter, defaulting
// to today in UK time, the timezone every tracked competition plays in.
func (h *Handler) requestDate(r *http.Request) string {
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		return date
	}
	return usecase.CatalogDate(h.now().In(h.location))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	date := h.requestDate(r)
	records, err := h.catalogService.Snapshot(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, matchToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	eventID := r.PathValue("eventID")
	rec, err := h.catalogService.GetMatch(ctx, h.requestDate(r), eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(rec))
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssignments")
	defer span.End()

	assignments, err := h.assignmentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list assignments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]assignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, assignmentDTO{Participant: a.Participant, EventID: a.EventID})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReplaceAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceAssignments")
	defer span.End()

	var req replaceAssignmentsRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.assignmentService.Replace(ctx, req.Assignments); err != nil {
		h.logger.WarnContext(ctx, "replace assignments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.ListAssignments(w, r.WithContext(ctx))
}

func (h *Handler) SetAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAssignment")
	defer span.End()

	participant := r.PathValue("participant")
	var req setAssignmentRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.assignmentService.Set(ctx, participant, req.EventID); err != nil {
		h.logger.WarnContext(ctx, "set assignment failed", "participant", participant, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentDTO{
		Participant: participant,
		EventID:     strings.TrimSpace(req.EventID),
	})
}

func (h *Handler) ListManualMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManualMatches")
	defer span.End()

	items, err := h.manualService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list manual matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddManualMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddManualMatch")
	defer span.End()

	var input usecase.AddManualMatchInput
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	entry, err := h.manualService.Add(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "add manual match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entry)
}

func (h *Handler) RemoveManualMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveManualMatch")
	defer span.End()

	eventID := r.PathValue("eventID")
	if err := h.manualService.Remove(ctx, eventID); err != nil {
		h.logger.WarnContext(ctx, "remove manual match failed", "match", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"removed": eventID})
}

func (h *Handler) ListTracked(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTracked")
	defer span.End()

	items, err := h.trackerService.ListTracked(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tracked failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RunTickJob triggers one out-of-band poll pass, useful right after
// changing assignments instead of waiting for the next scheduled tick.
func (h *Handler) RunTickJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTickJob")
	defer span.End()

	if err := h.pollerService.Tick(ctx); err != nil {
		h.logger.ErrorContext(ctx, "manual tick failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ticked"})
}
