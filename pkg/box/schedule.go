package box

import (
	"fmt"
	"sort"
	"time"
)

// Kind classifies a scheduled interval.
type Kind string

// Interval kinds recognized by the machine.
const (
	KindFocus Kind = "FOCUS"
	KindSleep Kind = "SLEEP"
)

// Interval is one scheduled lock period. Values are immutable: the
// calendar collaborator rebuilds the whole set on every refresh and the
// core never mutates them. Start and End carry the location the
// calendar resolved them to.
type Interval struct {
	Kind  Kind      `json:"kind"`
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval spans a positive duration.
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Contains reports whether t falls inside the half-open range
// [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s] %s %s → %s", iv.Kind, iv.Label,
		iv.Start.Format("15:04"), iv.End.Format("15:04"))
}

// Resolve returns the single interval active at now, if any. Overlaps
// are broken deterministically: earliest start wins, then earliest end.
// Invalid intervals are excluded rather than failing the whole call.
func Resolve(now time.Time, intervals []Interval) (Interval, bool) {
	matched := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Valid() {
			continue
		}
		if iv.Contains(now) {
			matched = append(matched, iv)
		}
	}
	if len(matched) == 0 {
		return Interval{}, false
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Start.Equal(matched[j].Start) {
			return matched[i].Start.Before(matched[j].Start)
		}
		return matched[i].End.Before(matched[j].End)
	})
	return matched[0], true
}

// NextStart returns the earliest interval starting after now, if any.
// The daemon uses it for log context only.
func NextStart(now time.Time, intervals []Interval) (Interval, bool) {
	var next Interval
	found := false
	for _, iv := range intervals {
		if !iv.Valid() || !iv.Start.After(now) {
			continue
		}
		if !found || iv.Start.Before(next.Start) {
			next = iv
			found = true
		}
	}
	return next, found
}
