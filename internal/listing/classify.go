// Package listing classifies meetings into the sidebar filters of the meetings
// index and paginates the result. Everything here is pure: callers pass the
// reference time and a snapshot of meetings.
package listing

import (
	"slices"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Scope ограничивает выборку набором проектов: один проект в проектном контексте,
// все доступные пользователю проекты в глобальном.
type Scope struct {
	ProjectIDs []int64
}

func ProjectScope(projectID int64) Scope {
	return Scope{ProjectIDs: []int64{projectID}}
}

func (s Scope) contains(projectID int64) bool {
	return slices.Contains(s.ProjectIDs, projectID)
}

type Query struct {
	Filter Filter
	UserID int64
	Scope  Scope
}

// Classify returns the meetings matching q in display order. The input slice
// is not modified.
func Classify(now time.Time, meetings []domain.Meeting, q Query) []domain.Meeting {
	f := q.Filter
	if !f.Valid() {
		f = FilterUpcoming
	}

	out := make([]domain.Meeting, 0, len(meetings))
	for i := range meetings {
		m := &meetings[i]
		if !q.Scope.contains(m.ProjectID) {
			continue
		}
		if matches(now, m, f, q.UserID) {
			out = append(out, *m)
		}
	}

	switch f {
	case FilterPast, FilterPastInvitations:
		slices.SortStableFunc(out, pastOrder(now))
	case FilterUpcoming, FilterUpcomingInvitations:
		slices.SortStableFunc(out, upcomingOrder(now))
	default:
		slices.SortStableFunc(out, byStartAsc)
	}
	return out
}

func matches(now time.Time, m *domain.Meeting, f Filter, userID int64) bool {
	switch f {
	case FilterUpcoming:
		return m.IsUpcoming(now)
	case FilterPast:
		return m.IsPast(now)
	case FilterUpcomingInvitations:
		return m.IsUpcoming(now) && m.HasParticipant(userID, domain.RoleInvitee)
	case FilterPastInvitations:
		return m.IsPast(now) && m.HasParticipant(userID, domain.RoleInvitee)
	case FilterAttendee:
		return m.HasParticipant(userID, domain.RoleAttendee)
	case FilterCreator:
		return m.AuthorID == userID
	}
	return false
}

// идущие сейчас встречи всегда первыми
func ongoingFirst(now time.Time, a, b *domain.Meeting) int {
	ao, bo := a.IsOngoing(now), b.IsOngoing(now)
	switch {
	case ao && !bo:
		return -1
	case !ao && bo:
		return 1
	}
	return 0
}

func upcomingOrder(now time.Time) func(a, b domain.Meeting) int {
	return func(a, b domain.Meeting) int {
		if c := ongoingFirst(now, &a, &b); c != 0 {
			return c
		}
		return byStartAsc(a, b)
	}
}

func pastOrder(now time.Time) func(a, b domain.Meeting) int {
	return func(a, b domain.Meeting) int {
		if c := ongoingFirst(now, &a, &b); c != 0 {
			return c
		}
		return byStartDesc(a, b)
	}
}

func byStartAsc(a, b domain.Meeting) int {
	if c := a.StartTime.Compare(b.StartTime); c != 0 {
		return c
	}
	return compareID(a.ID, b.ID)
}

func byStartDesc(a, b domain.Meeting) int {
	if c := b.StartTime.Compare(a.StartTime); c != 0 {
		return c
	}
	return compareID(a.ID, b.ID)
}

func compareID(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
