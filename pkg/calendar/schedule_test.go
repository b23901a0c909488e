package calendar

import (
	"testing"
	"time"

	calendarv3 "google.golang.org/api/calendar/v3"

	"github.com/SZhOU-c/focusbox/pkg/box"
)

func timedEvent(summary, start, end string) *calendarv3.Event {
	return &calendarv3.Event{
		Summary: summary,
		Start:   &calendarv3.EventDateTime{DateTime: start},
		End:     &calendarv3.EventDateTime{DateTime: end},
	}
}

func TestBuildIntervals_KeywordClassification(t *testing.T) {
	loc := time.UTC
	events := []*calendarv3.Event{
		timedEvent("FOCUS: deep work", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z"),
		timedEvent("wind down & sleep", "2025-03-10T22:00:00Z", "2025-03-10T23:00:00Z"),
		timedEvent("dentist", "2025-03-10T13:00:00Z", "2025-03-10T14:00:00Z"),
	}

	intervals := BuildIntervals(events, loc, DefaultKeywords)

	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if intervals[0].Kind != box.KindFocus {
		t.Errorf("first kind: got %v, want FOCUS", intervals[0].Kind)
	}
	if intervals[1].Kind != box.KindSleep {
		t.Errorf("second kind: got %v, want SLEEP (case-insensitive match)", intervals[1].Kind)
	}
}

func TestBuildIntervals_NormalizesToLocation(t *testing.T) {
	toronto, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	events := []*calendarv3.Event{
		timedEvent("FOCUS", "2025-03-10T14:00:00Z", "2025-03-10T15:00:00Z"),
	}
	intervals := BuildIntervals(events, toronto, DefaultKeywords)

	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(intervals))
	}
	got := intervals[0].Start
	if got.Location() != toronto {
		t.Errorf("Start location: got %v, want %v", got.Location(), toronto)
	}
	// 14:00 UTC is 10:00 in Toronto (EDT)
	if got.Hour() != 10 {
		t.Errorf("Start hour in Toronto: got %d, want 10", got.Hour())
	}
}

func TestBuildIntervals_AllDayEvent(t *testing.T) {
	loc := time.UTC
	events := []*calendarv3.Event{
		{
			Summary: "SLEEP day off",
			Start:   &calendarv3.EventDateTime{Date: "2025-03-10"},
			End:     &calendarv3.EventDateTime{Date: "2025-03-11"},
		},
	}

	intervals := BuildIntervals(events, loc, DefaultKeywords)
	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(intervals))
	}
	iv := intervals[0]
	if iv.Start.Hour() != 0 || iv.End.Sub(iv.Start) != 24*time.Hour {
		t.Errorf("all-day interval: got %v → %v", iv.Start, iv.End)
	}
}

func TestBuildIntervals_DropsMalformedTimes(t *testing.T) {
	loc := time.UTC
	events := []*calendarv3.Event{
		// Naive timestamp without an offset must be rejected
		timedEvent("FOCUS naive", "2025-03-10T09:00:00", "2025-03-10T10:00:00"),
		// Missing end
		{
			Summary: "FOCUS no end",
			Start:   &calendarv3.EventDateTime{DateTime: "2025-03-10T09:00:00Z"},
		},
		// Inverted
		timedEvent("FOCUS inverted", "2025-03-10T10:00:00Z", "2025-03-10T09:00:00Z"),
		// One good event survives
		timedEvent("FOCUS good", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z"),
	}

	intervals := BuildIntervals(events, loc, DefaultKeywords)
	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want only the well-formed one", len(intervals))
	}
	if intervals[0].Label != "FOCUS good" {
		t.Errorf("got %q, want %q", intervals[0].Label, "FOCUS good")
	}
}

func TestBuildIntervals_CustomKeywords(t *testing.T) {
	events := []*calendarv3.Event{
		timedEvent("深度工作 DW", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z"),
	}
	kw := KeywordConfig{Focus: "dw", Sleep: "zzz"}

	intervals := BuildIntervals(events, time.UTC, kw)
	if len(intervals) != 1 || intervals[0].Kind != box.KindFocus {
		t.Errorf("custom keyword match failed: %+v", intervals)
	}
}
