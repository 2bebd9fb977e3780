package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const meetingColumns = `id::text, project_id, title, location, start_time, duration_seconds, author_id, created_at`

type MeetingRepository struct {
	db *pgxpool.Pool
}

func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create сохраняет встречу вместе с участниками в одной транзакции.
func (r *MeetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO meetings (id, project_id, title, location, start_time, duration_seconds, author_id)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		m.ID, m.ProjectID, m.Title, m.Location, m.StartTime, int64(m.Duration/time.Second), m.AuthorID,
	).Scan(&m.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}

	for i := range m.Participants {
		p := &m.Participants[i]
		p.MeetingID = m.ID
		if _, err := insertParticipant(ctx, tx, p); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *MeetingRepository) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	uid, err := parseMeetingID(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1::uuid`, uid)
	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, err
	}

	parts, err := participantsFor(ctx, r.db, []string{m.ID})
	if err != nil {
		return nil, err
	}
	m.Participants = parts[m.ID]
	return &m, nil
}

// ListByProjects возвращает все встречи проектов вместе с участниками.
// Порядок и фильтрация по времени: забота listing.Classify.
func (r *MeetingRepository) ListByProjects(ctx context.Context, projectIDs []int64) ([]domain.Meeting, error) {
	if len(projectIDs) == 0 {
		return []domain.Meeting{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE project_id = ANY($1) ORDER BY start_time ASC`,
		projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Meeting, 0, 32)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out))
	for _, m := range out {
		ids = append(ids, m.ID)
	}
	parts, err := participantsFor(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Participants = parts[out[i].ID]
	}
	return out, nil
}

// parseMeetingID приводит id к каноничному виду; мусор: ErrMeetingNotFound.
func parseMeetingID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("meeting id %q: %w", id, domain.ErrMeetingNotFound)
	}
	return u.String(), nil
}

func scanMeeting(row pgx.Row) (domain.Meeting, error) {
	var (
		m       domain.Meeting
		seconds int64
	)
	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Location, &m.StartTime, &seconds, &m.AuthorID, &m.CreatedAt)
	m.Duration = time.Duration(seconds) * time.Second
	return m, err
}
