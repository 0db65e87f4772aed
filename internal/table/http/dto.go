package http

import (
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
	"github.com/elvisburrniku/OrderTable-sub004/internal/table"
)

// TableURI binds /restaurants/:id/tables/:tableId.
type TableURI struct {
	RestaurantID int64 `uri:"id" binding:"required,min=1"`
	ID           int64 `uri:"tableId" binding:"required,min=1"`
}

type TableResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	RoomID       *int64    `json:"room_id"`
	Label        string    `json:"label"`
	Capacity     int       `json:"capacity"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewResponse(t *table.Table) TableResponse {
	return TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		RoomID:       t.RoomID,
		Label:        t.Label,
		Capacity:     t.Capacity,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type ListTablesRequest struct {
	request.ListParams
	RoomID *int64 `form:"room_id" binding:"omitempty,min=1"`
	Active *bool  `form:"active"`
}

type CreateRequest struct {
	RoomID   *int64 `json:"room_id" binding:"omitempty,min=1"`
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Active   *bool  `json:"active"`
}

type UpdateRequest struct {
	RoomID    *int64  `json:"room_id" binding:"omitempty,min=1"`
	ClearRoom bool    `json:"clear_room"`
	Label     *string `json:"label"`
	Capacity  *int    `json:"capacity" binding:"omitempty,min=1"`
	Active    *bool   `json:"active"`
}
