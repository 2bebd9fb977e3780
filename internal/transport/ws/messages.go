package ws

import (
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Типы событий ленты встреч
const (
	TypeHello            = "hello"             // подтверждение подписки
	TypeMeetingCreated   = "meeting_created"   // в проекте создана встреча
	TypeParticipantAdded = "participant_added" // во встречу добавлен участник
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type HelloPayload struct {
	ProjectID int64 `json:"project_id"`
	UserID    int64 `json:"user_id"`
}

type MeetingPayload struct {
	ID        string    `json:"id"`
	ProjectID int64     `json:"project_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	AuthorID  int64     `json:"author_id"`
}

type ParticipantPayload struct {
	MeetingID string `json:"meeting_id"`
	ProjectID int64  `json:"project_id"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
}

func meetingPayload(m *domain.Meeting) MeetingPayload {
	return MeetingPayload{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Title:     m.Title,
		StartTime: m.StartTime,
		EndTime:   m.EndTime(),
		AuthorID:  m.AuthorID,
	}
}
