// Package availability decides whether a requested reservation fits on a
// table and, when it does not, which other table should take it. It works
// purely on in-memory snapshots supplied by the caller and never writes.
package availability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
)

var (
	ErrInvalidPartySize = apperror.New(http.StatusBadRequest, "party size must be positive")
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrTableNotFound    = apperror.New(http.StatusNotFound, "preferred table not found")
	ErrInvalidSettings  = apperror.New(http.StatusInternalServerError, "invalid availability settings")
	ErrCorruptBooking   = apperror.New(http.StatusInternalServerError, "stored booking has an unreadable time")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// Valid reports whether s is one of the known booking statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Table is the engine's view of a physical table.
type Table struct {
	ID       int64  `json:"id"`
	Capacity int    `json:"capacity"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
	RoomID   *int64 `json:"roomId,omitempty"`
}

// Booking is the engine's view of an existing reservation. A nil TableID means
// the booking is unassigned and never conflicts with anything.
type Booking struct {
	ID        int64   `json:"id"`
	TableID   *int64  `json:"tableId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	PartySize int     `json:"partySize"`
	Status    Status  `json:"status"`
	Customer  string  `json:"customer,omitempty"`
}

// Query describes the reservation being requested.
type Query struct {
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	EndTime          *string `json:"endTime"`
	PartySize        int     `json:"partySize"`
	PreferredTableID *int64  `json:"preferredTableId"`

	// ExcludeBookingID skips one existing booking, used when that booking is
	// the one being moved.
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// Settings are the per-restaurant engine parameters.
type Settings struct {
	TurnoverBuffer  time.Duration
	DefaultDuration time.Duration
}

// DefaultSettings returns a 60 minute turnover buffer and a 120 minute default duration.
func DefaultSettings() Settings {
	return Settings{
		TurnoverBuffer:  60 * time.Minute,
		DefaultDuration: 120 * time.Minute,
	}
}

// Validate checks that both values are whole minutes, the buffer is not
// negative and the default duration is positive.
func (s Settings) Validate() error {
	if s.TurnoverBuffer < 0 || s.TurnoverBuffer%time.Minute != 0 {
		return ErrInvalidSettings.With(fmt.Errorf("turnover buffer %s", s.TurnoverBuffer))
	}
	if s.DefaultDuration <= 0 || s.DefaultDuration%time.Minute != 0 {
		return ErrInvalidSettings.With(fmt.Errorf("default duration %s", s.DefaultDuration))
	}
	return nil
}

type Kind string

const (
	KindClear                   Kind = "Clear"
	KindConflictWithAlternative Kind = "ConflictWithAlternative"
	KindConflictNoAlternative   Kind = "ConflictNoAlternative"
)

// Decision is the outcome of a check. Which fields are set depends on Kind:
//
//	Clear                    Table
//	ConflictWithAlternative  Conflict, Alternative
//	ConflictNoAlternative    Conflict (nil when nothing was preferred or no tables exist)
type Decision struct {
	Kind        Kind     `json:"kind"`
	Table       *Table   `json:"table,omitempty"`
	Conflict    *Booking `json:"conflict,omitempty"`
	Alternative *Table   `json:"alternative,omitempty"`
}

// Usable returns the table a caller may book on, if any.
func (d Decision) Usable() (Table, bool) {
	switch d.Kind {
	case KindClear:
		if d.Table != nil {
			return *d.Table, true
		}
	case KindConflictWithAlternative:
		if d.Alternative != nil {
			return *d.Alternative, true
		}
	}
	return Table{}, false
}

func clearOn(t Table) Decision {
	return Decision{Kind: KindClear, Table: &t}
}

func conflictWithAlternative(conflict Booking, alt Table) Decision {
	return Decision{Kind: KindConflictWithAlternative, Conflict: &conflict, Alternative: &alt}
}

func conflictNoAlternative(conflict *Booking) Decision {
	if conflict == nil {
		return Decision{Kind: KindConflictNoAlternative}
	}
	c := *conflict
	return Decision{Kind: KindConflictNoAlternative, Conflict: &c}
}
