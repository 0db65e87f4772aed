package http

import (
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
)

type RestaurantResponse struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	OpeningHoursStart      string    `json:"opening_hours_start"`
	OpeningHoursEnd        string    `json:"opening_hours_end"`
	TurnoverBufferMinutes  *int      `json:"turnover_buffer_minutes"`
	DefaultDurationMinutes *int      `json:"default_duration_minutes"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func NewRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:                     r.ID,
		Name:                   r.Name,
		OpeningHoursStart:      r.OpeningHoursStart,
		OpeningHoursEnd:        r.OpeningHoursEnd,
		TurnoverBufferMinutes:  r.TurnoverBufferMinutes,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

type ListRestaurantsRequest struct {
	request.ListParams
	Q string `form:"q"`
}

type CreateRestaurantRequest struct {
	Name                   string `json:"name" binding:"required"`
	OpeningHoursStart      string `json:"opening_hours_start"`
	OpeningHoursEnd        string `json:"opening_hours_end"`
	TurnoverBufferMinutes  *int   `json:"turnover_buffer_minutes" binding:"omitempty,min=0"`
	DefaultDurationMinutes *int   `json:"default_duration_minutes" binding:"omitempty,min=1"`
}

type UpdateRestaurantRequest struct {
	Name                   *string `json:"name"`
	OpeningHoursStart      *string `json:"opening_hours_start"`
	OpeningHoursEnd        *string `json:"opening_hours_end"`
	TurnoverBufferMinutes  *int    `json:"turnover_buffer_minutes" binding:"omitempty,min=0"`
	DefaultDurationMinutes *int    `json:"default_duration_minutes" binding:"omitempty,min=1"`
	ResetBuffer            bool    `json:"reset_turnover_buffer"`
	ResetDuration          bool    `json:"reset_default_duration"`
}
