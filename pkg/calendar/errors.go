package calendar

import "errors"

// errMissingTime marks an event boundary with neither a dateTime nor a
// date, which the API should never produce.
var errMissingTime = errors.New("calendar: event boundary has no time")
