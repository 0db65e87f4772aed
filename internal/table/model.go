package table

import (
	"net/http"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "table not found")
	ErrEmptyLabel      = apperror.New(http.StatusBadRequest, "label cannot be empty")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrLabelTaken      = apperror.New(http.StatusConflict, "label already used in this restaurant")
	ErrRoomNotFound    = apperror.New(http.StatusBadRequest, "room does not exist")
)

// Table is a physical table in a restaurant.
type Table struct {
	ID           int64
	TenantID     int64
	RestaurantID int64
	RoomID       *int64
	Label        string
	Capacity     int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Catalog converts t to the engine's view.
func (t *Table) Catalog() availability.Table {
	return availability.Table{
		ID:       t.ID,
		Capacity: t.Capacity,
		Label:    t.Label,
		Active:   t.Active,
		RoomID:   t.RoomID,
	}
}

// Filter defines parameters for listing tables.
type Filter struct {
	TenantID     int64
	RestaurantID int64
	RoomID       *int64
	Active       *bool
	Page         int
	PageSize     int
	SortOrder    string
}
