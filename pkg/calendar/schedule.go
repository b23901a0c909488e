package calendar

import (
	"log/slog"
	"strings"
	"time"

	calendarv3 "google.golang.org/api/calendar/v3"

	"github.com/SZhOU-c/focusbox/pkg/box"
)

// KeywordConfig controls how event titles map to interval kinds.
// Matching is case-insensitive substring containment.
type KeywordConfig struct {
	Focus string
	Sleep string
}

// DefaultKeywords matches titles containing FOCUS or SLEEP.
var DefaultKeywords = KeywordConfig{Focus: "FOCUS", Sleep: "SLEEP"}

// BuildIntervals maps calendar events to lock intervals in loc. Events
// without a matching keyword are skipped silently; events with
// malformed or missing times are skipped loudly. All-day events cover
// local midnight to midnight.
func BuildIntervals(events []*calendarv3.Event, loc *time.Location, kw KeywordConfig) []box.Interval {
	intervals := make([]box.Interval, 0, len(events))

	for _, e := range events {
		title := strings.TrimSpace(e.Summary)
		kind, ok := classify(title, kw)
		if !ok {
			continue
		}

		start, err := eventTime(e.Start, loc)
		if err != nil {
			slog.Error("dropping event with bad start time", "title", title, "error", err)
			continue
		}
		end, err := eventTime(e.End, loc)
		if err != nil {
			slog.Error("dropping event with bad end time", "title", title, "error", err)
			continue
		}

		iv := box.Interval{Kind: kind, Label: title, Start: start, End: end}
		if !iv.Valid() {
			slog.Error("dropping event with non-positive duration", "title", title,
				"start", start, "end", end)
			continue
		}
		intervals = append(intervals, iv)
	}

	slog.Info("built schedule", "events", len(events), "intervals", len(intervals))
	return intervals
}

func classify(title string, kw KeywordConfig) (box.Kind, bool) {
	upper := strings.ToUpper(title)
	if kw.Focus != "" && strings.Contains(upper, strings.ToUpper(kw.Focus)) {
		return box.KindFocus, true
	}
	if kw.Sleep != "" && strings.Contains(upper, strings.ToUpper(kw.Sleep)) {
		return box.KindSleep, true
	}
	return "", false
}

// eventTime resolves an event boundary to loc. Timed events carry an
// RFC3339 timestamp with an explicit offset; anything without one is an
// error rather than a silent guess. All-day events carry a bare date
// interpreted as local midnight.
func eventTime(edt *calendarv3.EventDateTime, loc *time.Location) (time.Time, error) {
	if edt == nil {
		return time.Time{}, errMissingTime
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(loc), nil
	}
	if edt.Date != "" {
		return time.ParseInLocation("2006-01-02", edt.Date, loc)
	}
	return time.Time{}, errMissingTime
}
