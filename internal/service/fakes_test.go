package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type memberKey struct {
	projectID int64
	userID    int64
}

type fakeProjects struct {
	projects map[int64]domain.Project
	members  map[memberKey][]domain.Permission
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{
		projects: map[int64]domain.Project{},
		members:  map[memberKey][]domain.Permission{},
	}
}

func (f *fakeProjects) add(p domain.Project) {
	f.projects[p.ID] = p
}

func (f *fakeProjects) grant(projectID, userID int64, perms ...domain.Permission) {
	f.members[memberKey{projectID, userID}] = perms
}

func (f *fakeProjects) GetByIdentifier(_ context.Context, ident string) (*domain.Project, error) {
	for _, p := range f.projects {
		if p.Identifier == ident || strconv.FormatInt(p.ID, 10) == ident {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (f *fakeProjects) Membership(_ context.Context, projectID, userID int64) (*domain.Membership, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &domain.Membership{Project: p, UserID: userID, Permissions: f.members[memberKey{projectID, userID}]}, nil
}

func (f *fakeProjects) Memberships(_ context.Context, userID int64) ([]domain.Membership, error) {
	var out []domain.Membership
	for id := int64(1); id <= int64(len(f.projects)); id++ {
		perms, ok := f.members[memberKey{id, userID}]
		if !ok {
			continue
		}
		out = append(out, domain.Membership{Project: f.projects[id], UserID: userID, Permissions: perms})
	}
	return out, nil
}

type fakeMeetings struct {
	mu       sync.Mutex
	meetings []domain.Meeting
}

func (f *fakeMeetings) Create(_ context.Context, m *domain.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meetings = append(f.meetings, *m)
	return nil
}

func (f *fakeMeetings) Get(_ context.Context, id string) (*domain.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meetings {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, domain.ErrMeetingNotFound
}

func (f *fakeMeetings) ListByProjects(_ context.Context, ids []int64) ([]domain.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Meeting{}
	for _, m := range f.meetings {
		for _, id := range ids {
			if m.ProjectID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeMeetings) Add(_ context.Context, p *domain.Participant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meetings {
		if f.meetings[i].ID != p.MeetingID {
			continue
		}
		for _, existing := range f.meetings[i].Participants {
			if existing.UserID == p.UserID && existing.Role == p.Role {
				return domain.ErrAlreadyJoined
			}
		}
		f.meetings[i].Participants = append(f.meetings[i].Participants, *p)
		return nil
	}
	return domain.ErrMeetingNotFound
}

type recordedEvents struct {
	created []string
	added   []domain.Participant
}

func (r *recordedEvents) MeetingCreated(_ context.Context, m *domain.Meeting) {
	r.created = append(r.created, m.ID)
}

func (r *recordedEvents) ParticipantAdded(_ context.Context, _ *domain.Meeting, p domain.Participant) {
	r.added = append(r.added, p)
}

type fakeBoards struct {
	boards []domain.Board
}

func (f *fakeBoards) Create(_ context.Context, b *domain.Board) error {
	b.ID = int64(len(f.boards) + 1)
	f.boards = append(f.boards, *b)
	return nil
}

func (f *fakeBoards) Get(_ context.Context, id int64) (*domain.Board, error) {
	for _, b := range f.boards {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, domain.ErrBoardNotFound
}

func (f *fakeBoards) ListByProjects(_ context.Context, ids []int64) ([]domain.Board, error) {
	out := []domain.Board{}
	for _, b := range f.boards {
		for _, id := range ids {
			if b.ProjectID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}
