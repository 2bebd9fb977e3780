package domain

import "time"

// DefaultDuration: активное окно встречи, если длительность не задана.
const DefaultDuration = time.Hour

type Meeting struct {
	ID           string        `db:"id"`
	ProjectID    int64         `db:"project_id"`
	Title        string        `db:"title"`
	Location     string        `db:"location"`
	StartTime    time.Time     `db:"start_time"`
	Duration     time.Duration `db:"duration"`
	AuthorID     int64         `db:"author_id"`
	CreatedAt    time.Time     `db:"created_at"`
	Participants []Participant `db:"-"`
}

func (m *Meeting) window() time.Duration {
	if m.Duration <= 0 {
		return DefaultDuration
	}
	return m.Duration
}

func (m *Meeting) EndTime() time.Time {
	return m.StartTime.Add(m.window())
}

// IsOngoing: start <= now < end.
func (m *Meeting) IsOngoing(now time.Time) bool {
	return !m.StartTime.After(now) && now.Before(m.EndTime())
}

// IsUpcoming: встреча ещё не закончилась (включая идущие сейчас).
func (m *Meeting) IsUpcoming(now time.Time) bool {
	return m.EndTime().After(now)
}

// IsPast: встреча уже началась; идущие сейчас тоже считаются прошедшими.
func (m *Meeting) IsPast(now time.Time) bool {
	return m.StartTime.Before(now)
}

func (m *Meeting) HasParticipant(userID int64, role ParticipantRole) bool {
	for _, p := range m.Participants {
		if p.UserID == userID && p.Role == role {
			return true
		}
	}
	return false
}
