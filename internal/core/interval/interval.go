// Package interval converts between the textual interval representation
// persisted for worked/break durations and whole seconds. The store emits
// either "<n> seconds" (what this service writes) or "HH:MM:SS" (what
// postgres renders for older rows), so both forms are accepted.
package interval

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	secondsForm = regexp.MustCompile(`^(\d+)\s*seconds?$`)
	hmsForm     = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)
)

// ParseSeconds returns the duration in whole seconds. Unparseable or nil
// input yields 0: display aggregation is best-effort and must never fail
// because of one malformed row.
func ParseSeconds(interval *string) int64 {
	if interval == nil || *interval == "" {
		return 0
	}

	if m := secondsForm.FindStringSubmatch(*interval); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	if m := hmsForm.FindStringSubmatch(*interval); m != nil {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		mi, _ := strconv.ParseInt(m[2], 10, 64)
		s, _ := strconv.ParseInt(m[3], 10, 64)
		return h*3600 + mi*60 + s
	}

	return 0
}

// FormatSeconds renders seconds in the canonical stored form.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d seconds", seconds)
}
