package service

import (
	"context"
	"fmt"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type ProjectRepository interface {
	GetByIdentifier(ctx context.Context, ident string) (*domain.Project, error)
	Membership(ctx context.Context, projectID, userID int64) (*domain.Membership, error)
	Memberships(ctx context.Context, userID int64) ([]domain.Membership, error)
}

// Access отвечает на вопрос «может ли пользователь X в проекте P».
type Access struct {
	projects ProjectRepository
}

func NewAccess(projects ProjectRepository) *Access {
	return &Access{projects: projects}
}

// InProject проверяет модуль и право в проекте, заданном slug'ом или id.
func (a *Access) InProject(ctx context.Context, userID int64, ident, module string, perm domain.Permission) (*domain.Membership, error) {
	p, err := a.projects.GetByIdentifier(ctx, ident)
	if err != nil {
		return nil, err
	}
	return a.AllowedIn(ctx, userID, p.ID, module, perm)
}

func (a *Access) AllowedIn(ctx context.Context, userID, projectID int64, module string, perm domain.Permission) (*domain.Membership, error) {
	m, err := a.projects.Membership(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !m.Project.ModuleEnabled(module) {
		return nil, fmt.Errorf("project %s: %w", m.Project.Identifier, domain.ErrModuleDisabled)
	}
	if !m.Allowed(perm) {
		return m, fmt.Errorf("%s in project %s: %w", perm, m.Project.Identifier, domain.ErrForbidden)
	}
	return m, nil
}

// Visible: проекты с включённым модулем, где у пользователя есть право perm.
func (a *Access) Visible(ctx context.Context, userID int64, module string, perm domain.Permission) ([]domain.Membership, error) {
	all, err := a.projects.Memberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Membership, 0, len(all))
	for _, m := range all {
		if m.Project.ModuleEnabled(module) && m.Allowed(perm) {
			out = append(out, m)
		}
	}
	return out, nil
}

func projectIDs(ms []domain.Membership) []int64 {
	ids := make([]int64, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.Project.ID)
	}
	return ids
}
