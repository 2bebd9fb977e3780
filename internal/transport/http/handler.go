package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/calendar"
	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/listing"
	"github.com/cwrk-planet/meeting-service/internal/service"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type MeetingService interface {
	List(ctx context.Context, userID int64, p service.ListParams) (*service.ListResult, error)
	Calendar(ctx context.Context, userID int64, projectIdent string, filter listing.Filter) ([]domain.Meeting, error)
	Get(ctx context.Context, userID int64, id string) (*domain.Meeting, error)
	Create(ctx context.Context, userID int64, projectIdent string, in service.CreateMeeting) (*domain.Meeting, error)
	AddParticipant(ctx context.Context, userID int64, meetingID string, participantID int64, role domain.ParticipantRole) (*domain.Participant, error)
	PerPageOptions() []int
	Now() time.Time
}

type BoardService interface {
	Overview(ctx context.Context, userID int64) ([]service.ProjectBoards, error)
	Index(ctx context.Context, userID int64, projectIdent string) ([]domain.Board, error)
	Show(ctx context.Context, userID int64, projectIdent string, id int64) (*domain.Board, error)
	New(ctx context.Context, userID int64, projectIdent string) (*service.BoardDraft, error)
	Create(ctx context.Context, userID int64, projectIdent, name string) (*domain.Board, error)
}

type Handler struct {
	meetings MeetingService
	boards   BoardService
	metrics  *Metrics
}

func NewHandler(meetings MeetingService, boards BoardService, metrics *Metrics) *Handler {
	return &Handler{meetings: meetings, boards: boards, metrics: metrics}
}

// GET /meetings, GET /projects/{projectID}/meetings?filter=&page=&per_page=
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := service.ListParams{
		ProjectIdentifier: chi.URLParam(r, "projectID"),
		Filter:            listing.ParseFilter(q.Get("filter")),
		Page:              intParam(q.Get("page"), 1),
		PerPage:           intParam(q.Get("per_page"), 0),
	}

	res, err := h.meetings.List(r.Context(), httpmw.UserIDFromCtx(r.Context()), params)
	if err != nil {
		writeError(w, r, "handler.ListMeetings", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveIndex(string(res.Filter))
	}

	writeJSON(w, http.StatusOK, toPageResponse(res, h.meetings.Now(), h.meetings.PerPageOptions()))
}

// GET /meetings.ics, GET /projects/{projectID}/meetings.ics?filter=
func (h *Handler) MeetingsCalendar(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "projectID")
	filter := listing.ParseFilter(r.URL.Query().Get("filter"))

	ms, err := h.meetings.Calendar(r.Context(), httpmw.UserIDFromCtx(r.Context()), project, filter)
	if err != nil {
		writeError(w, r, "handler.MeetingsCalendar", err)
		return
	}

	name := filter.Label()
	if project != "" {
		name = fmt.Sprintf("%s: %s", project, name)
	}
	var buf bytes.Buffer
	if err := calendar.Encode(&buf, name, ms, h.meetings.Now()); err != nil {
		writeError(w, r, "handler.MeetingsCalendar.Encode", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meetings.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GET /meetings/{id}
func (h *Handler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	m, err := h.meetings.Get(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "handler.GetMeeting", err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingItem(m, h.meetings.Now()))
}

// POST /projects/{projectID}/meetings
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	m, err := h.meetings.Create(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "projectID"), service.CreateMeeting{
		Title:     req.Title,
		Location:  req.Location,
		StartTime: req.StartTime,
		Duration:  time.Duration(req.DurationMinutes) * time.Minute,
		Invitees:  req.Invitees,
	})
	if err != nil {
		writeError(w, r, "handler.CreateMeeting", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMeetingItem(m, h.meetings.Now()))
}

// POST /meetings/{id}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	role := domain.ParticipantRole(req.Role)
	if role == "" {
		role = domain.RoleInvitee
	}

	p, err := h.meetings.AddParticipant(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "id"), req.UserID, role)
	if err != nil {
		writeError(w, r, "handler.AddParticipant", err)
		return
	}
	writeJSON(w, http.StatusCreated, ParticipantItem{UserID: p.UserID, Role: string(p.Role)})
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
