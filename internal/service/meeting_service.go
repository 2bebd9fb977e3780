package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/listing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("github.com/cwrk-planet/meeting-service/internal/service")

type MeetingRepository interface {
	Create(ctx context.Context, m *domain.Meeting) error
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	ListByProjects(ctx context.Context, projectIDs []int64) ([]domain.Meeting, error)
}

type ParticipantRepository interface {
	Add(ctx context.Context, p *domain.Participant) error
}

// MeetingEvents получает уведомления об изменениях (websocket-лента).
type MeetingEvents interface {
	MeetingCreated(ctx context.Context, m *domain.Meeting)
	ParticipantAdded(ctx context.Context, m *domain.Meeting, p domain.Participant)
}

type MeetingService struct {
	meetings     MeetingRepository
	participants ParticipantRepository
	access       *Access
	events       MeetingEvents

	perPageOptions  []int
	defaultDuration time.Duration
	now             func() time.Time
}

func NewMeetingService(meetings MeetingRepository, participants ParticipantRepository, access *Access) *MeetingService {
	return &MeetingService{
		meetings:        meetings,
		participants:    participants,
		access:          access,
		perPageOptions:  []int{20, 100},
		defaultDuration: domain.DefaultDuration,
		now:             time.Now,
	}
}

func (s *MeetingService) SetPerPageOptions(opts []int) {
	if len(opts) > 0 {
		s.perPageOptions = slices.Clone(opts)
	}
}

func (s *MeetingService) SetDefaultDuration(d time.Duration) {
	if d > 0 {
		s.defaultDuration = d
	}
}

func (s *MeetingService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *MeetingService) SetEvents(ev MeetingEvents) {
	s.events = ev
}

func (s *MeetingService) PerPageOptions() []int {
	return slices.Clone(s.perPageOptions)
}

type ListParams struct {
	ProjectIdentifier string // пусто: глобальный контекст
	Filter            listing.Filter
	Page              int
	PerPage           int
}

type ListResult struct {
	Page      listing.Page[domain.Meeting]
	Filter    listing.Filter
	Project   *domain.Project // nil в глобальном контексте
	CanCreate bool
}

// List отдаёт индекс встреч: классификация по фильтру сайдбара и пагинация.
func (s *MeetingService) List(ctx context.Context, userID int64, p ListParams) (*ListResult, error) {
	ctx, span := tracer.Start(ctx, "MeetingService.List")
	defer span.End()

	if !p.Filter.Valid() {
		p.Filter = listing.FilterUpcoming
	}
	span.SetAttributes(
		attribute.String("meetings.filter", string(p.Filter)),
		attribute.String("meetings.project", p.ProjectIdentifier),
	)

	sc, err := s.scope(ctx, userID, p.ProjectIdentifier)
	if err != nil {
		return nil, err
	}

	ordered, err := s.classified(ctx, userID, sc, p.Filter)
	if err != nil {
		return nil, err
	}

	page := listing.Paginate(ordered, p.Page, listing.PerPage(p.PerPage, s.perPageOptions))
	if page.OutOfRange() {
		return nil, fmt.Errorf("page %d of %d: %w", page.Page, page.TotalPages, domain.ErrPageOutOfRange)
	}
	span.SetAttributes(attribute.Int("meetings.total", page.Total))

	return &ListResult{
		Page:      page,
		Filter:    p.Filter,
		Project:   sc.project,
		CanCreate: sc.canCreate,
	}, nil
}

// Calendar: тот же отбор, что и List, но без пагинации (для .ics).
func (s *MeetingService) Calendar(ctx context.Context, userID int64, projectIdent string, filter listing.Filter) ([]domain.Meeting, error) {
	sc, err := s.scope(ctx, userID, projectIdent)
	if err != nil {
		return nil, err
	}
	return s.classified(ctx, userID, sc, filter)
}

// Now: текущее время по часам сервиса.
func (s *MeetingService) Now() time.Time {
	return s.now()
}

type meetingScope struct {
	listing.Scope
	project   *domain.Project
	canCreate bool
}

func (s *MeetingService) scope(ctx context.Context, userID int64, projectIdent string) (*meetingScope, error) {
	if projectIdent != "" {
		m, err := s.access.InProject(ctx, userID, projectIdent, domain.ModuleMeetings, domain.PermViewMeetings)
		if err != nil {
			return nil, err
		}
		return &meetingScope{
			Scope:     listing.ProjectScope(m.Project.ID),
			project:   &m.Project,
			canCreate: m.Allowed(domain.PermCreateMeetings),
		}, nil
	}

	visible, err := s.access.Visible(ctx, userID, domain.ModuleMeetings, domain.PermViewMeetings)
	if err != nil {
		return nil, err
	}
	sc := &meetingScope{Scope: listing.Scope{ProjectIDs: projectIDs(visible)}}
	for _, m := range visible {
		if m.Allowed(domain.PermCreateMeetings) {
			sc.canCreate = true
			break
		}
	}
	return sc, nil
}

func (s *MeetingService) classified(ctx context.Context, userID int64, sc *meetingScope, filter listing.Filter) ([]domain.Meeting, error) {
	all, err := s.meetings.ListByProjects(ctx, sc.ProjectIDs)
	if err != nil {
		return nil, fmt.Errorf("meetings.ListByProjects: %w", err)
	}
	for i := range all {
		if all[i].Duration <= 0 {
			all[i].Duration = s.defaultDuration
		}
	}
	return listing.Classify(s.now(), all, listing.Query{
		Filter: filter,
		UserID: userID,
		Scope:  sc.Scope,
	}), nil
}

func (s *MeetingService) Get(ctx context.Context, userID int64, id string) (*domain.Meeting, error) {
	m, err := s.meetings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.AllowedIn(ctx, userID, m.ProjectID, domain.ModuleMeetings, domain.PermViewMeetings); err != nil {
		return nil, err
	}
	if m.Duration <= 0 {
		m.Duration = s.defaultDuration
	}
	return m, nil
}

type CreateMeeting struct {
	Title     string
	Location  string
	StartTime time.Time
	Duration  time.Duration
	Invitees  []int64
}

func (s *MeetingService) Create(ctx context.Context, userID int64, projectIdent string, in CreateMeeting) (*domain.Meeting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("empty title: %w", domain.ErrInvalidInput)
	}
	if in.StartTime.IsZero() {
		return nil, fmt.Errorf("start time is required: %w", domain.ErrInvalidInput)
	}
	if in.Duration < 0 {
		return nil, fmt.Errorf("negative duration: %w", domain.ErrInvalidInput)
	}

	member, err := s.access.InProject(ctx, userID, projectIdent, domain.ModuleMeetings, domain.PermCreateMeetings)
	if err != nil {
		return nil, err
	}

	m := &domain.Meeting{
		ID:        uuid.NewString(),
		ProjectID: member.Project.ID,
		Title:     title,
		Location:  strings.TrimSpace(in.Location),
		StartTime: in.StartTime,
		Duration:  in.Duration,
		AuthorID:  userID,
	}
	if m.Duration == 0 {
		m.Duration = s.defaultDuration
	}

	seen := make(map[int64]struct{}, len(in.Invitees))
	for _, uid := range in.Invitees {
		if uid <= 0 {
			return nil, fmt.Errorf("invitee id %d: %w", uid, domain.ErrInvalidInput)
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		m.Participants = append(m.Participants, domain.Participant{UserID: uid, Role: domain.RoleInvitee})
	}

	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("meetings.Create: %w", err)
	}
	if s.events != nil {
		s.events.MeetingCreated(ctx, m)
	}
	return m, nil
}

// AddParticipant доступен автору встречи и тем, кто может создавать встречи в проекте.
func (s *MeetingService) AddParticipant(ctx context.Context, userID int64, meetingID string, participantID int64, role domain.ParticipantRole) (*domain.Participant, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("role %q: %w", role, domain.ErrInvalidInput)
	}
	if participantID <= 0 {
		return nil, fmt.Errorf("user id %d: %w", participantID, domain.ErrInvalidInput)
	}

	m, err := s.meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	_, err = s.access.AllowedIn(ctx, userID, m.ProjectID, domain.ModuleMeetings, domain.PermCreateMeetings)
	if err != nil && !(errors.Is(err, domain.ErrForbidden) && m.AuthorID == userID) {
		return nil, err
	}

	p := domain.Participant{MeetingID: m.ID, UserID: participantID, Role: role}
	if err := s.participants.Add(ctx, &p); err != nil {
		return nil, err
	}
	m.Participants = append(m.Participants, p)
	if s.events != nil {
		s.events.ParticipantAdded(ctx, m, p)
	}
	return &p, nil
}
