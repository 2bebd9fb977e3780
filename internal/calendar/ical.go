// Package calendar renders meetings as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/emersion/go-ical"
)

const productID = "-//cwrk-planet//meeting-service//EN"

// Build собирает VCALENDAR с одним VEVENT на встречу.
func Build(name string, meetings []domain.Meeting, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	if name != "" {
		cal.Props.SetText("X-WR-CALNAME", name)
	}

	for i := range meetings {
		m := &meetings[i]
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, m.ID)
		ev.Props.SetText(ical.PropSummary, m.Title)
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeStart, m.StartTime.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, m.EndTime().UTC())
		if m.Location != "" {
			ev.Props.SetText(ical.PropLocation, m.Location)
		}
		cal.Children = append(cal.Children, ev.Component)
	}
	return cal
}

// Encode пишет календарь в w. Пустой календарь go-ical кодировать отказывается,
// поэтому его собираем вручную: заголовок без VEVENT.
func Encode(w io.Writer, name string, meetings []domain.Meeting, stamp time.Time) error {
	if len(meetings) == 0 {
		return encodeEmpty(w, name)
	}
	if err := ical.NewEncoder(w).Encode(Build(name, meetings, stamp)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`, "\r", "")

func encodeEmpty(w io.Writer, name string) error {
	lines := []string{
		"BEGIN:" + ical.CompCalendar,
		ical.PropVersion + ":2.0",
		ical.PropProductID + ":" + productID,
	}
	if name != "" {
		lines = append(lines, "X-WR-CALNAME:"+textEscaper.Replace(name))
	}
	lines = append(lines, "END:"+ical.CompCalendar, "")

	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
