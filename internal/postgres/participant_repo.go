package postgres

import (
	"context"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Add добавляет роль участника; повторная та же роль: ErrAlreadyJoined.
func (r *ParticipantRepository) Add(ctx context.Context, p *domain.Participant) error {
	added, err := insertParticipant(ctx, r.db, p)
	if err != nil {
		return err
	}
	if !added {
		return domain.ErrAlreadyJoined
	}
	return nil
}

func insertParticipant(ctx context.Context, q querier, p *domain.Participant) (bool, error) {
	var added bool
	err := q.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO meeting_participants (meeting_id, user_id, role)
			VALUES ($1::uuid, $2, $3)
			ON CONFLICT DO NOTHING
			RETURNING created_at
		)
		SELECT created_at, true FROM ins
		UNION ALL
		SELECT now(), false WHERE NOT EXISTS (SELECT 1 FROM ins)`,
		p.MeetingID, p.UserID, string(p.Role)).Scan(&p.CreatedAt, &added)
	if err != nil {
		return false, mapPgError(err)
	}
	return added, nil
}

func participantsFor(ctx context.Context, q querier, meetingIDs []string) (map[string][]domain.Participant, error) {
	out := make(map[string][]domain.Participant, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx, `
		SELECT meeting_id::text, user_id, role, created_at
		FROM meeting_participants
		WHERE meeting_id = ANY($1::uuid[])
		ORDER BY created_at ASC`, meetingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p    domain.Participant
			role string
		)
		if err := rows.Scan(&p.MeetingID, &p.UserID, &role, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Role = domain.ParticipantRole(role)
		out[p.MeetingID] = append(out[p.MeetingID], p)
	}
	return out, rows.Err()
}
