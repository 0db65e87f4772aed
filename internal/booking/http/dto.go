package http

import (
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/booking"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
)

// BookingURI binds /restaurants/:id/bookings/:bookingId.
type BookingURI struct {
	RestaurantID int64 `uri:"id" binding:"required,min=1"`
	ID           int64 `uri:"bookingId" binding:"required,min=1"`
}

type BookingResponse struct {
	ID            int64     `json:"id"`
	RestaurantID  int64     `json:"restaurant_id"`
	TableID       *int64    `json:"table_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       *string   `json:"end_time"`
	PartySize     int       `json:"party_size"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		RestaurantID:  b.RestaurantID,
		TableID:       b.TableID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		PartySize:     b.PartySize,
		Status:        string(b.Status),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type TableTag struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
}

func newTableTag(t *availability.Table) *TableTag {
	if t == nil {
		return nil
	}
	return &TableTag{ID: t.ID, Label: t.Label, Capacity: t.Capacity}
}

// BookingTag is the short form of a booking shown inside decisions and floor states.
type BookingTag struct {
	ID        int64   `json:"id"`
	TableID   *int64  `json:"table_id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	PartySize int     `json:"party_size"`
	Customer  string  `json:"customer,omitempty"`
}

func newBookingTag(b *availability.Booking) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{
		ID:        b.ID,
		TableID:   b.TableID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		PartySize: b.PartySize,
		Customer:  b.Customer,
	}
}

type DecisionResponse struct {
	Kind        string      `json:"kind"`
	Table       *TableTag   `json:"table,omitempty"`
	Conflict    *BookingTag `json:"conflict,omitempty"`
	Alternative *TableTag   `json:"alternative,omitempty"`
}

func NewDecisionResponse(d availability.Decision) DecisionResponse {
	return DecisionResponse{
		Kind:        string(d.Kind),
		Table:       newTableTag(d.Table),
		Conflict:    newBookingTag(d.Conflict),
		Alternative: newTableTag(d.Alternative),
	}
}

// ConflictResponse is the 409 body of a create or update the decision refused.
type ConflictResponse struct {
	Error    string           `json:"error"`
	Decision DecisionResponse `json:"decision"`
}

// CommitResponse is a written booking plus the decision it was placed by.
type CommitResponse struct {
	Booking  BookingResponse   `json:"booking"`
	Decision *DecisionResponse `json:"decision,omitempty"`
}

type TableStateResponse struct {
	Table   TableTag    `json:"table"`
	Status  string      `json:"status"`
	Current *BookingTag `json:"current,omitempty"`
	Next    *BookingTag `json:"next,omitempty"`
}

func NewTableStateResponse(s availability.TableState) TableStateResponse {
	return TableStateResponse{
		Table:   *newTableTag(&s.Table),
		Status:  string(s.Status),
		Current: newBookingTag(s.Current),
		Next:    newBookingTag(s.Next),
	}
}

type ListBookingsRequest struct {
	request.ListParams
	Date    string `form:"date"`
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed no-show"`
	TableID *int64 `form:"table_id" binding:"omitempty,min=1"`
}

type CreateBookingRequest struct {
	Date              string  `json:"date" binding:"required"`
	StartTime         string  `json:"start_time" binding:"required"`
	EndTime           *string `json:"end_time"`
	PartySize         int     `json:"party_size" binding:"required,min=1"`
	PreferredTableID  *int64  `json:"preferred_table_id" binding:"omitempty,min=1"`
	AcceptAlternative bool    `json:"accept_alternative"`
	Status            *string `json:"status" binding:"omitempty,oneof=pending confirmed"`
	CustomerName      string  `json:"customer_name" binding:"required"`
	CustomerEmail     string  `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone     string  `json:"customer_phone"`
	Notes             string  `json:"notes"`
}

type UpdateBookingRequest struct {
	Date              *string `json:"date"`
	StartTime         *string `json:"start_time"`
	EndTime           *string `json:"end_time"`
	ClearEndTime      bool    `json:"clear_end_time"`
	PartySize         *int    `json:"party_size" binding:"omitempty,min=1"`
	TableID           *int64  `json:"table_id" binding:"omitempty,min=1"`
	AcceptAlternative bool    `json:"accept_alternative"`
	Status            *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed no-show"`
	CustomerName      *string `json:"customer_name"`
	CustomerEmail     *string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone     *string `json:"customer_phone"`
	Notes             *string `json:"notes"`
}

type CheckRequest struct {
	Date             string  `json:"date" binding:"required"`
	StartTime        string  `json:"start_time" binding:"required"`
	EndTime          *string `json:"end_time"`
	PartySize        int     `json:"party_size" binding:"required,min=1"`
	PreferredTableID *int64  `json:"preferred_table_id" binding:"omitempty,min=1"`
	ExcludeBookingID *int64  `json:"exclude_booking_id" binding:"omitempty,min=1"`
}

func (r CheckRequest) Query() availability.Query {
	return availability.Query{
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		PartySize:        r.PartySize,
		PreferredTableID: r.PreferredTableID,
		ExcludeBookingID: r.ExcludeBookingID,
	}
}

type FreeTablesRequest struct {
	Date      string  `form:"date" binding:"required"`
	StartTime string  `form:"start_time" binding:"required"`
	EndTime   *string `form:"end_time"`
	PartySize int     `form:"party_size" binding:"required,min=1"`
}

type OccupancyRequest struct {
	Date string `form:"date" binding:"required"`
	At   string `form:"at" binding:"required"`
}

func statusPtr(s *string) *booking.Status {
	if s == nil {
		return nil
	}
	st := booking.Status(*s)
	return &st
}
