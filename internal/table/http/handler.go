package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/response"
	"github.com/elvisburrniku/OrderTable-sub004/internal/table"
)

type Handler struct {
	service table.Service
}

func NewHandler(service table.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req ListTablesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := table.Filter{
		TenantID:     auth.GetTenantID(c),
		RestaurantID: uri.ID,
		RoomID:       req.RoomID,
		Active:       req.Active,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortOrder:    req.SortOrder,
	}

	tables, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TableResponse, len(tables))
	for i, t := range tables {
		items[i] = NewResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	t, err := h.service.Create(c.Request.Context(), table.CreateRequest{
		TenantID:     auth.GetTenantID(c),
		RestaurantID: uri.ID,
		RoomID:       body.RoomID,
		Label:        body.Label,
		Capacity:     body.Capacity,
		Active:       body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(t))
}

func (h *Handler) Get(c *gin.Context) {
	var uri TableURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), auth.GetTenantID(c), uri.RestaurantID, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

func (h *Handler) Update(c *gin.Context) {
	var uri TableURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	t, err := h.service.Update(c.Request.Context(), auth.GetTenantID(c), uri.RestaurantID, uri.ID, table.UpdateRequest{
		RoomID:    body.RoomID,
		ClearRoom: body.ClearRoom,
		Label:     body.Label,
		Capacity:  body.Capacity,
		Active:    body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri TableURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetTenantID(c), uri.RestaurantID, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
