package invite

import (
	"strings"
	"testing"
	"time"
)

func validInput() Input {
	return Input{
		Title:         "Team Sync",
		Description:   "Agenda:\nfirst item\nsecond item",
		Start:         time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC),
		Organizer:     "organizer@example.com",
		AttendeeEmail: "alice@example.com",
		AttendeeName:  "Alice",
	}
}

func TestGenerateRequiredFields(t *testing.T) {
	mutations := []func(*Input){
		func(in *Input) { in.Title = "" },
		func(in *Input) { in.Start = time.Time{} },
		func(in *Input) { in.End = time.Time{} },
		func(in *Input) { in.Organizer = "" },
		func(in *Input) { in.AttendeeEmail = "" },
	}
	for i, mutate := range mutations {
		in := validInput()
		mutate(&in)
		if _, err := Generate(in); err != ErrInvalidInput {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestGenerateStructure(t *testing.T) {
	p, err := Generate(validInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	ics := string(p.ICS)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"UID:" + p.UID,
		"DTSTART:20260314T150000Z",
		"DTEND:20260314T153000Z",
		"SUMMARY:Team Sync",
		"ORGANIZER:mailto:organizer@example.com",
		"ATTENDEE;CN=Alice;RSVP=TRUE:mailto:alice@example.com",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("missing %q in payload:\n%s", want, ics)
		}
	}

	if strings.Count(ics, "BEGIN:VEVENT") != 1 {
		t.Error("expected exactly one event block")
	}
	if strings.Contains(ics, "DESCRIPTION:Agenda:\nfirst") {
		t.Error("description newlines were not escaped")
	}
	if !strings.Contains(ics, `DESCRIPTION:Agenda:\nfirst item\nsecond item`) {
		t.Error("description not encoded as single-line \\n sequences")
	}
}

func TestGenerateUTCNormalization(t *testing.T) {
	in := validInput()
	ist := time.FixedZone("IST", 5*3600+1800)
	in.Start = time.Date(2026, 3, 14, 20, 30, 0, 0, ist) // 15:00 UTC
	in.End = in.Start.Add(30 * time.Minute)

	p, err := Generate(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(p.ICS), "DTSTART:20260314T150000Z") {
		t.Errorf("start not normalized to UTC:\n%s", p.ICS)
	}
}

func TestGenerateFreshUIDPerAttendee(t *testing.T) {
	a := validInput()
	b := validInput()
	b.AttendeeEmail = "bob@example.com"

	pa, err := Generate(a)
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	pb, err := Generate(b)
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}

	if pa.UID == pb.UID {
		t.Fatal("expected distinct UIDs per attendee")
	}

	// Same meeting: time encodings must be identical across payloads.
	for _, stamp := range []string{"DTSTART:20260314T150000Z", "DTEND:20260314T153000Z"} {
		if !strings.Contains(string(pa.ICS), stamp) || !strings.Contains(string(pb.ICS), stamp) {
			t.Errorf("missing %q in one of the payloads", stamp)
		}
	}
}

func TestGenerateDefaultAttendeeName(t *testing.T) {
	in := validInput()
	in.AttendeeName = ""
	p, err := Generate(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(p.ICS), "ATTENDEE;CN=Attendee;RSVP=TRUE") {
		t.Error("expected default attendee name")
	}
}
