// Package invite generates single-event calendar invite payloads (iCalendar
// METHOD:REQUEST) for meeting emails.
//
// One logical meeting becomes N independent payloads, one per attendee, each
// with its own UID. That is deliberate: a per-attendee UID lets every
// recipient RSVP independently without their clients collapsing the invites
// into one shared event.
package invite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a required invite field is missing.
var ErrInvalidInput = errors.New("invite: title, start, end, organizer and attendee are required")

// Input describes one meeting invite for one attendee. Start and End are
// converted to UTC during encoding; callers pass instants in any zone.
type Input struct {
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	Organizer     string
	AttendeeEmail string
	AttendeeName  string
}

// Payload is the per-attendee computed invite artifact. It is ephemeral:
// built immediately before a send and discarded after, never persisted.
type Payload struct {
	UID       string
	CreatedAt time.Time
	ICS       []byte
}

const dtFormat = "20060102T150405Z"

// Generate renders one attendee's invite. Each call mints a fresh UID, even
// for identical inputs.
func Generate(in Input) (*Payload, error) {
	if in.Title == "" || in.Start.IsZero() || in.End.IsZero() || in.Organizer == "" || in.AttendeeEmail == "" {
		return nil, ErrInvalidInput
	}

	attendeeName := in.AttendeeName
	if attendeeName == "" {
		attendeeName = "Attendee"
	}

	uid := uuid.New().String()
	now := time.Now().UTC()

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("PRODID:-//AI Email Camping//Campaign Scheduler//EN")
	line("VERSION:2.0")
	line("CALSCALE:GREGORIAN")
	line("METHOD:REQUEST")
	line("BEGIN:VEVENT")
	line("UID:%s", uid)
	line("DTSTAMP:%s", now.Format(dtFormat))
	line("DTSTART:%s", in.Start.UTC().Format(dtFormat))
	line("DTEND:%s", in.End.UTC().Format(dtFormat))
	line("SUMMARY:%s", flatten(in.Title))
	line("DESCRIPTION:%s", escapeText(in.Description))
	line("ORGANIZER:mailto:%s", in.Organizer)
	line("ATTENDEE;CN=%s;RSVP=TRUE:mailto:%s", flatten(attendeeName), in.AttendeeEmail)
	line("END:VEVENT")
	line("END:VCALENDAR")

	return &Payload{UID: uid, CreatedAt: now, ICS: []byte(b.String())}, nil
}

// flatten collapses a value to a single line for single-line ICS properties.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// escapeText encodes description text per RFC 5545: literal newlines become
// \n sequences so the property stays on one line.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
