package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BoardRepository struct {
	db *pgxpool.Pool
}

func NewBoardRepository(db *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO boards (project_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`, b.ProjectID, b.Name).
		Scan(&b.ID, &b.CreatedAt)
	return mapPgError(err)
}

func (r *BoardRepository) Get(ctx context.Context, id int64) (*domain.Board, error) {
	var b domain.Board
	err := r.db.QueryRow(ctx, `SELECT id, project_id, name, created_at FROM boards WHERE id = $1`, id).
		Scan(&b.ID, &b.ProjectID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BoardRepository) ListByProjects(ctx context.Context, projectIDs []int64) ([]domain.Board, error) {
	if len(projectIDs) == 0 {
		return []domain.Board{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, name, created_at
		FROM boards
		WHERE project_id = ANY($1)
		ORDER BY project_id, name, id`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Board, 0, 16)
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
