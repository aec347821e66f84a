package utils

import (
	"regexp"
	"time"
)

// fechaRe strictly validates YYYY-MM-DD with an optional time component and
// optional timezone designator.  Locale-dependent formats (month names,
// slashes) never match.
var fechaRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([\sT]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[\+\-]\d{2}:\d{2})?)?$`)

// layouts accepted once the pattern matched, tried in order.
var fechaLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseAndValidateDate parses a client-supplied date string.  It returns the
// zero time and false when the input is empty, does not follow the strict
// pattern, is not a real calendar date, or lies in the future at the moment
// of evaluation.  Absence of the field is a validation concern of the caller,
// not of this function.
func ParseAndValidateDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if !fechaRe.MatchString(s) {
		return time.Time{}, false
	}
	var fecha time.Time
	var err error
	for _, layout := range fechaLayouts {
		fecha, err = time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			break
		}
	}
	if err != nil {
		// Matches the pattern but is not a real calendar date, e.g. 2025-02-30.
		return time.Time{}, false
	}
	if fecha.After(time.Now()) {
		return time.Time{}, false
	}
	return fecha, true
}
