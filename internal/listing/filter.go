package listing

import "strings"

type Filter string

const (
	FilterUpcoming            Filter = "upcoming"
	FilterPast                Filter = "past"
	FilterUpcomingInvitations Filter = "upcoming_invitations"
	FilterPastInvitations     Filter = "past_invitations"
	FilterAttendee            Filter = "attendee"
	FilterCreator             Filter = "creator"
)

// Filters: порядок как в сайдбаре.
var Filters = []Filter{
	FilterUpcoming,
	FilterPast,
	FilterUpcomingInvitations,
	FilterPastInvitations,
	FilterAttendee,
	FilterCreator,
}

var labels = map[Filter]string{
	FilterUpcoming:            "Upcoming meetings",
	FilterPast:                "Past meetings",
	FilterUpcomingInvitations: "Upcoming invitations",
	FilterPastInvitations:     "Past invitations",
	FilterAttendee:            "Attendee",
	FilterCreator:             "Creator",
}

func (f Filter) Label() string {
	return labels[f]
}

func (f Filter) Valid() bool {
	_, ok := labels[f]
	return ok
}

// ParseFilter принимает ключ ("past_invitations") или подпись из сайдбара ("Past invitations").
// Пустое или неизвестное значение даёт FilterUpcoming.
func ParseFilter(s string) Filter {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterUpcoming
	}
	key := Filter(strings.ReplaceAll(strings.ToLower(s), " ", "_"))
	if key.Valid() {
		return key
	}
	for f, label := range labels {
		if strings.EqualFold(label, s) {
			return f
		}
	}
	return FilterUpcoming
}
