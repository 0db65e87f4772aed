package booking

import (
	"net/http"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict        = apperror.New(http.StatusConflict, "table is not available for the requested time")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition   = apperror.New(http.StatusConflict, "status change not allowed")
	ErrOutsideOpeningHours = apperror.New(http.StatusBadRequest, "start time is outside opening hours")
	ErrClosedBooking       = apperror.New(http.StatusConflict, "booking is closed and cannot be rescheduled")
	ErrInvalidInput        = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status = availability.Status

const (
	StatusPending   = availability.StatusPending
	StatusConfirmed = availability.StatusConfirmed
	StatusCancelled = availability.StatusCancelled
	StatusCompleted = availability.StatusCompleted
	StatusNoShow    = availability.StatusNoShow
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// CanTransition reports whether a booking may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking is a reservation. Date is YYYY-MM-DD, StartTime and EndTime are
// HH:MM wall-clock times. A nil EndTime means the restaurant's default
// duration applies; a nil TableID means no table has been assigned.
type Booking struct {
	ID            int64
	TenantID      int64
	RestaurantID  int64
	TableID       *int64
	Date          string
	StartTime     string
	EndTime       *string
	PartySize     int
	Status        Status
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot converts b to the engine's view.
func (b *Booking) Snapshot() availability.Booking {
	return availability.Booking{
		ID:        b.ID,
		TableID:   b.TableID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		PartySize: b.PartySize,
		Status:    b.Status,
		Customer:  b.CustomerName,
	}
}

type Filter struct {
	TenantID     int64
	RestaurantID int64
	Date         string
	Status       Status
	TableID      *int64
	Page         int
	PageSize     int
	SortOrder    string
}
