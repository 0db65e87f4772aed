package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/response"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
)

type Handler struct {
	service restaurant.Service
}

func NewHandler(service restaurant.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRestaurantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := restaurant.Filter{
		TenantID:  auth.GetTenantID(c),
		Keyword:   req.Q,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}

	restaurants, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		items[i] = NewRestaurantResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRestaurantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), restaurant.CreateRequest{
		TenantID:               auth.GetTenantID(c),
		Name:                   body.Name,
		OpeningHoursStart:      body.OpeningHoursStart,
		OpeningHoursEnd:        body.OpeningHoursEnd,
		TurnoverBufferMinutes:  body.TurnoverBufferMinutes,
		DefaultDurationMinutes: body.DefaultDurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRestaurantResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), auth.GetTenantID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRestaurantResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), auth.GetTenantID(c), uri.ID, restaurant.UpdateRequest{
		Name:                   body.Name,
		OpeningHoursStart:      body.OpeningHoursStart,
		OpeningHoursEnd:        body.OpeningHoursEnd,
		TurnoverBufferMinutes:  body.TurnoverBufferMinutes,
		DefaultDurationMinutes: body.DefaultDurationMinutes,
		ClearBuffer:            body.ResetBuffer,
		ClearDuration:          body.ResetDuration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRestaurantResponse(r))
}
