package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func newBoardEnv() (*BoardService, *fakeBoards) {
	projects := newFakeProjects()
	projects.add(domain.Project{ID: 1, Identifier: "foobar", Name: "Foobar", EnabledModules: []string{domain.ModuleBoards}})
	projects.add(domain.Project{ID: 2, Identifier: "other", Name: "Other", EnabledModules: []string{domain.ModuleBoards}})
	projects.grant(1, alice, domain.PermViewBoards, domain.PermManageBoards)
	projects.grant(2, alice, domain.PermViewBoards)

	boards := &fakeBoards{boards: []domain.Board{
		{ID: 1, ProjectID: 1, Name: "Kanban"},
		{ID: 2, ProjectID: 2, Name: "Roadmap"},
	}}
	return NewBoardService(boards, NewAccess(projects)), boards
}

func TestBoards_Overview(t *testing.T) {
	svc, _ := newBoardEnv()
	groups, err := svc.Overview(context.Background(), alice)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Boards) != 1 || g.Boards[0].ProjectID != g.Project.ID {
			t.Fatalf("boards not grouped by project: %+v", g)
		}
	}
}

func TestBoards_Index(t *testing.T) {
	svc, _ := newBoardEnv()
	all, err := svc.Index(context.Background(), alice, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("global index: %v, %v", all, err)
	}
	scoped, err := svc.Index(context.Background(), alice, "other")
	if err != nil || len(scoped) != 1 || scoped[0].Name != "Roadmap" {
		t.Fatalf("project index: %v, %v", scoped, err)
	}
}

func TestBoards_Show(t *testing.T) {
	svc, _ := newBoardEnv()
	if _, err := svc.Show(context.Background(), alice, "", 1); err != nil {
		t.Fatalf("global show: %v", err)
	}
	if _, err := svc.Show(context.Background(), alice, "foobar", 1); err != nil {
		t.Fatalf("project show: %v", err)
	}
	if _, err := svc.Show(context.Background(), alice, "1", 1); err != nil {
		t.Fatalf("project show by id: %v", err)
	}
	if _, err := svc.Show(context.Background(), alice, "other", 1); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("board of another project: expected ErrBoardNotFound, got %v", err)
	}
	if _, err := svc.Show(context.Background(), bob, "", 1); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
}

func TestBoards_NewAndCreate(t *testing.T) {
	svc, boards := newBoardEnv()

	draft, err := svc.New(context.Background(), alice, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(draft.Projects) != 1 || draft.Projects[0].Identifier != "foobar" {
		t.Fatalf("only manageable projects expected: %+v", draft.Projects)
	}
	if _, err := svc.New(context.Background(), alice, "other"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("New in read-only project: expected ErrForbidden, got %v", err)
	}

	b, err := svc.Create(context.Background(), alice, "foobar", " Sprint ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Name != "Sprint" || b.ProjectID != 1 || len(boards.boards) != 3 {
		t.Fatalf("unexpected board: %+v", b)
	}
	if _, err := svc.Create(context.Background(), alice, "", "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing project: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), alice, "other", "x"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("read-only project: expected ErrForbidden, got %v", err)
	}
}
