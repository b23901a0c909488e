package box

import (
	"testing"
	"time"
)

var tz = time.FixedZone("EST", -5*3600)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, tz)
}

func interval(kind Kind, label string, start, end time.Time) Interval {
	return Interval{Kind: kind, Label: label, Start: start, End: end}
}

func TestResolve_NoMatch(t *testing.T) {
	intervals := []Interval{
		interval(KindFocus, "morning", at(9, 0), at(10, 0)),
	}

	if _, ok := Resolve(at(10, 30), intervals); ok {
		t.Error("expected no active interval after the block ends")
	}
	if _, ok := Resolve(at(8, 59), intervals); ok {
		t.Error("expected no active interval before the block starts")
	}
}

func TestResolve_HalfOpenBounds(t *testing.T) {
	iv := interval(KindFocus, "morning", at(9, 0), at(10, 0))
	intervals := []Interval{iv}

	// Start is inclusive
	got, ok := Resolve(at(9, 0), intervals)
	if !ok {
		t.Fatal("expected active interval at start instant")
	}
	if got.Label != "morning" {
		t.Errorf("Label: got %q, want %q", got.Label, "morning")
	}

	// End is exclusive
	if _, ok := Resolve(at(10, 0), intervals); ok {
		t.Error("expected no active interval at end instant")
	}
}

func TestResolve_OverlapPicksEarliestStart(t *testing.T) {
	a := interval(KindFocus, "early", at(9, 0), at(10, 0))
	b := interval(KindSleep, "late", at(9, 30), at(11, 0))

	// Scan order must not matter
	for _, intervals := range [][]Interval{{a, b}, {b, a}} {
		got, ok := Resolve(at(9, 45), intervals)
		if !ok {
			t.Fatal("expected an active interval at 9:45")
		}
		if got.Label != "early" {
			t.Errorf("overlap tie-break: got %q, want %q", got.Label, "early")
		}
	}
}

func TestResolve_SameStartPicksEarliestEnd(t *testing.T) {
	a := interval(KindFocus, "short", at(9, 0), at(9, 30))
	b := interval(KindFocus, "long", at(9, 0), at(11, 0))

	got, ok := Resolve(at(9, 15), []Interval{b, a})
	if !ok {
		t.Fatal("expected an active interval")
	}
	if got.Label != "short" {
		t.Errorf("same-start tie-break: got %q, want %q", got.Label, "short")
	}
}

func TestResolve_SkipsInvalidIntervals(t *testing.T) {
	bad := interval(KindFocus, "inverted", at(10, 0), at(9, 0))
	good := interval(KindFocus, "valid", at(9, 0), at(10, 0))

	got, ok := Resolve(at(9, 30), []Interval{bad, good})
	if !ok {
		t.Fatal("expected the valid interval to match")
	}
	if got.Label != "valid" {
		t.Errorf("got %q, want %q", got.Label, "valid")
	}

	if _, ok := Resolve(at(9, 30), []Interval{bad}); ok {
		t.Error("an invalid interval must never resolve as active")
	}
}

func TestResolve_ResultContainsNow(t *testing.T) {
	intervals := []Interval{
		interval(KindFocus, "a", at(8, 0), at(9, 0)),
		interval(KindSleep, "b", at(9, 0), at(12, 0)),
		interval(KindFocus, "c", at(14, 0), at(15, 0)),
	}
	for _, now := range []time.Time{at(7, 59), at(8, 30), at(9, 0), at(11, 59), at(13, 0), at(14, 30)} {
		got, ok := Resolve(now, intervals)
		if !ok {
			continue
		}
		if !got.Contains(now) {
			t.Errorf("Resolve(%v) returned %v which does not contain now", now, got)
		}
	}
}

func TestNextStart(t *testing.T) {
	intervals := []Interval{
		interval(KindFocus, "afternoon", at(14, 0), at(15, 0)),
		interval(KindFocus, "morning", at(9, 0), at(10, 0)),
	}

	next, ok := NextStart(at(8, 0), intervals)
	if !ok {
		t.Fatal("expected an upcoming interval")
	}
	if next.Label != "morning" {
		t.Errorf("got %q, want %q", next.Label, "morning")
	}

	if _, ok := NextStart(at(16, 0), intervals); ok {
		t.Error("expected no upcoming interval after the last block")
	}
}
