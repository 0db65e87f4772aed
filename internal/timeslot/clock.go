// Package timeslot holds the minute-resolution wall-clock primitives used by the
// booking engine: "HH:MM" parsing and formatting, same-day arithmetic and
// half-open interval overlap.
package timeslot

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
)

// MinutesPerDay is the length of a wall-clock day.
const MinutesPerDay = 24 * 60

// DateLayout is the calendar date format used for bookings and queries.
const DateLayout = "2006-01-02"

var ErrInvalidTimeFormat = apperror.New(http.StatusBadRequest, "invalid time format, expected HH:MM")

// ParseTime converts a "HH:MM" wall-clock string into minutes since midnight.
// Both parts must be numeric and within 00:00..23:59.
func ParseTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTimeFormat.With(fmt.Errorf("%q: want two parts, got %d", s, len(parts)))
	}

	h, err := parsePart(parts[0])
	if err != nil || h > 23 {
		return 0, invalid(s)
	}
	m, err := parsePart(parts[1])
	if err != nil || m > 59 {
		return 0, invalid(s)
	}
	return h*60 + m, nil
}

// MustParseTime is ParseTime for literals known to be valid.
func MustParseTime(s string) int {
	m, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return m
}

// AddMinutes shifts a wall-clock time by delta minutes, wrapping within a single
// day. The calendar date never changes: 23:30 + 120 is 01:30.
func AddMinutes(t, delta int) int {
	r := (t + delta) % MinutesPerDay
	if r < 0 {
		r += MinutesPerDay
	}
	return r
}

// FormatTime renders minutes since midnight as zero-padded "HH:MM".
// Values outside a single day are wrapped first.
func FormatTime(minutes int) string {
	m := AddMinutes(minutes, 0)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func parsePart(p string) (int, error) {
	if p == "" || len(p) > 2 {
		return 0, fmt.Errorf("bad part %q", p)
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("bad part %q", p)
		}
	}
	return strconv.Atoi(p)
}

func invalid(s string) error {
	return ErrInvalidTimeFormat.With(fmt.Errorf("%q is not a valid time of day", s))
}
