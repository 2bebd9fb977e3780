package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type BoardRepository interface {
	Create(ctx context.Context, b *domain.Board) error
	Get(ctx context.Context, id int64) (*domain.Board, error)
	ListByProjects(ctx context.Context, projectIDs []int64) ([]domain.Board, error)
}

type BoardService struct {
	boards BoardRepository
	access *Access
}

func NewBoardService(boards BoardRepository, access *Access) *BoardService {
	return &BoardService{boards: boards, access: access}
}

type ProjectBoards struct {
	Project domain.Project
	Boards  []domain.Board
}

// Overview: доски всех видимых проектов, сгруппированные по проекту.
func (s *BoardService) Overview(ctx context.Context, userID int64) ([]ProjectBoards, error) {
	visible, err := s.access.Visible(ctx, userID, domain.ModuleBoards, domain.PermViewBoards)
	if err != nil {
		return nil, err
	}
	boards, err := s.boards.ListByProjects(ctx, projectIDs(visible))
	if err != nil {
		return nil, fmt.Errorf("boards.ListByProjects: %w", err)
	}

	byProject := make(map[int64][]domain.Board, len(visible))
	for _, b := range boards {
		byProject[b.ProjectID] = append(byProject[b.ProjectID], b)
	}
	out := make([]ProjectBoards, 0, len(visible))
	for _, m := range visible {
		out = append(out, ProjectBoards{Project: m.Project, Boards: byProject[m.Project.ID]})
	}
	return out, nil
}

func (s *BoardService) Index(ctx context.Context, userID int64, projectIdent string) ([]domain.Board, error) {
	var ids []int64
	if projectIdent != "" {
		m, err := s.access.InProject(ctx, userID, projectIdent, domain.ModuleBoards, domain.PermViewBoards)
		if err != nil {
			return nil, err
		}
		ids = []int64{m.Project.ID}
	} else {
		visible, err := s.access.Visible(ctx, userID, domain.ModuleBoards, domain.PermViewBoards)
		if err != nil {
			return nil, err
		}
		ids = projectIDs(visible)
	}
	return s.boards.ListByProjects(ctx, ids)
}

// Show: если задан проект, доска должна ему принадлежать.
func (s *BoardService) Show(ctx context.Context, userID int64, projectIdent string, id int64) (*domain.Board, error) {
	b, err := s.boards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := s.access.AllowedIn(ctx, userID, b.ProjectID, domain.ModuleBoards, domain.PermViewBoards)
	if err != nil {
		return nil, err
	}
	if projectIdent != "" && !matchesProject(m.Project, projectIdent) {
		return nil, domain.ErrBoardNotFound
	}
	return b, nil
}

type BoardDraft struct {
	Project  *domain.Project  // выбранный проект (проектный контекст)
	Projects []domain.Project // куда пользователь может добавить доску
}

func (s *BoardService) New(ctx context.Context, userID int64, projectIdent string) (*BoardDraft, error) {
	if projectIdent != "" {
		m, err := s.access.InProject(ctx, userID, projectIdent, domain.ModuleBoards, domain.PermManageBoards)
		if err != nil {
			return nil, err
		}
		return &BoardDraft{Project: &m.Project, Projects: []domain.Project{m.Project}}, nil
	}

	visible, err := s.access.Visible(ctx, userID, domain.ModuleBoards, domain.PermManageBoards)
	if err != nil {
		return nil, err
	}
	draft := &BoardDraft{Projects: make([]domain.Project, 0, len(visible))}
	for _, m := range visible {
		draft.Projects = append(draft.Projects, m.Project)
	}
	return draft, nil
}

func (s *BoardService) Create(ctx context.Context, userID int64, projectIdent, name string) (*domain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty board name: %w", domain.ErrInvalidInput)
	}
	if projectIdent == "" {
		return nil, fmt.Errorf("project is required: %w", domain.ErrInvalidInput)
	}
	m, err := s.access.InProject(ctx, userID, projectIdent, domain.ModuleBoards, domain.PermManageBoards)
	if err != nil {
		return nil, err
	}

	b := &domain.Board{ProjectID: m.Project.ID, Name: name}
	if err := s.boards.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("boards.Create: %w", err)
	}
	return b, nil
}

func matchesProject(p domain.Project, ident string) bool {
	return p.Identifier == ident || fmt.Sprint(p.ID) == ident
}
