package ws

import (
	"context"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
)

// Notifier публикует события встреч в ленту проекта.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) MeetingCreated(ctx context.Context, m *domain.Meeting) {
	sent := n.hub.Broadcast(m.ProjectID, Message{Type: TypeMeetingCreated, Payload: meetingPayload(m)})
	httpmw.L(ctx).Debug("ws meeting_created", "meeting", m.ID, "project", m.ProjectID, "subscribers", sent)
}

func (n *Notifier) ParticipantAdded(ctx context.Context, m *domain.Meeting, p domain.Participant) {
	sent := n.hub.Broadcast(m.ProjectID, Message{
		Type: TypeParticipantAdded,
		Payload: ParticipantPayload{
			MeetingID: m.ID,
			ProjectID: m.ProjectID,
			UserID:    p.UserID,
			Role:      string(p.Role),
		},
	})
	httpmw.L(ctx).Debug("ws participant_added", "meeting", m.ID, "user", p.UserID, "subscribers", sent)
}
