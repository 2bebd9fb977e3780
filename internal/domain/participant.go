package domain

import "time"

type ParticipantRole string

const (
	RoleInvitee  ParticipantRole = "invitee"
	RoleAttendee ParticipantRole = "attendee"
)

func (r ParticipantRole) Valid() bool {
	return r == RoleInvitee || r == RoleAttendee
}

type Participant struct {
	MeetingID string          `db:"meeting_id"`
	UserID    int64           `db:"user_id"`
	Role      ParticipantRole `db:"role"`
	CreatedAt time.Time       `db:"created_at"`
}
