package restaurant

import (
	"net/http"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "restaurant not found")
	ErrEmptyName           = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidOpeningHours = apperror.New(http.StatusBadRequest, "opening hours must be HH:MM with distinct start and end")
	ErrInvalidBuffer       = apperror.New(http.StatusBadRequest, "turnover buffer must not be negative")
	ErrInvalidDuration     = apperror.New(http.StatusBadRequest, "default duration must be positive")
)

// Restaurant is a venue owned by a tenant. The two minute overrides replace
// the process-wide engine defaults when set.
type Restaurant struct {
	ID                     int64
	TenantID               int64
	Name                   string
	OpeningHoursStart      string // HH:MM
	OpeningHoursEnd        string // HH:MM
	TurnoverBufferMinutes  *int
	DefaultDurationMinutes *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// OpenAt reports whether a reservation may start at the given minute of day.
// An end at or before the start means the restaurant closes after midnight.
func (r *Restaurant) OpenAt(minute int) bool {
	open, err := timeslot.ParseTime(r.OpeningHoursStart)
	if err != nil {
		return true
	}
	closeAt, err := timeslot.ParseTime(r.OpeningHoursEnd)
	if err != nil {
		return true
	}
	if open < closeAt {
		return minute >= open && minute < closeAt
	}
	return minute >= open || minute < closeAt
}

type Filter struct {
	TenantID  int64
	Keyword   string
	Page      int
	PageSize  int
	SortOrder string
}
