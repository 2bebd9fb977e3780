package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetByIdentifier ищет проект по slug'у или по числовому id ("foobar" и "1" оба допустимы).
func (r *ProjectRepository) GetByIdentifier(ctx context.Context, ident string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx, `
		SELECT id, identifier, name, enabled_modules
		FROM projects
		WHERE identifier = $1 OR id::text = $1
		ORDER BY (identifier = $1) DESC
		LIMIT 1`, ident).
		Scan(&p.ID, &p.Identifier, &p.Name, &p.EnabledModules)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Membership возвращает права пользователя в проекте; не участник: пустой список прав.
func (r *ProjectRepository) Membership(ctx context.Context, projectID, userID int64) (*domain.Membership, error) {
	m := &domain.Membership{UserID: userID}
	var perms []string
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.identifier, p.name, p.enabled_modules, COALESCE(pm.permissions, '{}')
		FROM projects AS p
		LEFT JOIN project_members AS pm ON pm.project_id = p.id AND pm.user_id = $2
		WHERE p.id = $1`, projectID, userID).
		Scan(&m.Project.ID, &m.Project.Identifier, &m.Project.Name, &m.Project.EnabledModules, &perms)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	m.Permissions = toPermissions(perms)
	return m, nil
}

// Memberships: все проекты, где пользователь состоит участником.
func (r *ProjectRepository) Memberships(ctx context.Context, userID int64) ([]domain.Membership, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.identifier, p.name, p.enabled_modules, pm.permissions
		FROM project_members AS pm
		JOIN projects AS p ON p.id = pm.project_id
		WHERE pm.user_id = $1
		ORDER BY p.name, p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Membership, 0, 8)
	for rows.Next() {
		m := domain.Membership{UserID: userID}
		var perms []string
		if err := rows.Scan(&m.Project.ID, &m.Project.Identifier, &m.Project.Name, &m.Project.EnabledModules, &perms); err != nil {
			return nil, err
		}
		m.Permissions = toPermissions(perms)
		out = append(out, m)
	}
	return out, rows.Err()
}

func toPermissions(in []string) []domain.Permission {
	out := make([]domain.Permission, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Permission(s))
	}
	return out
}
