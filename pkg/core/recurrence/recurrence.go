package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ExpandRRule returns the occurrence dates of an RRULE inside the inclusive
// [rangeStart, rangeEnd] range. The rule's DTSTART is anchored to rangeStart
// so that expansion depends only on the requested range, not on when the
// rule was authored.
func ExpandRRule(rruleStr string, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(rruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule %q: %w", rruleStr, err)
	}

	rule.DTStart(rangeStart)

	return rule.Between(rangeStart, rangeEnd, true), nil
}

// Matches reports whether an RRULE produces an occurrence on the given date.
// Comparison is by calendar date, ignoring time of day.
func Matches(rruleStr string, date time.Time, rangeStart, rangeEnd time.Time) (bool, error) {
	occurrences, err := ExpandRRule(rruleStr, rangeStart, rangeEnd)
	if err != nil {
		return false, err
	}

	target := date.Format("2006-01-02")
	for _, occurrence := range occurrences {
		if occurrence.Format("2006-01-02") == target {
			return true, nil
		}
	}
	return false, nil
}
