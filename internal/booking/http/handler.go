package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/booking"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/request"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// commitError answers a failed create or update. A refusal by the decision
// carries the decision so the client can offer the alternative table.
func commitError(c *gin.Context, err error, d availability.Decision) {
	if errors.Is(err, booking.ErrTimeConflict) && d.Kind != "" && d.Kind != availability.KindClear {
		c.JSON(http.StatusConflict, ConflictResponse{
			Error:    booking.ErrTimeConflict.Message,
			Decision: NewDecisionResponse(d),
		})
		return
	}
	response.Error(c, err)
}

func commitResponse(b *booking.Booking, d availability.Decision) CommitResponse {
	resp := CommitResponse{Booking: NewBookingResponse(b)}
	if d.Kind != "" {
		dr := NewDecisionResponse(d)
		resp.Decision = &dr
	}
	return resp
}

func (h *Handler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	filter := booking.Filter{
		TenantID:     auth.GetTenantID(c),
		RestaurantID: uri.ID,
		Date:         req.Date,
		Status:       booking.Status(req.Status),
		TableID:      req.TableID,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortOrder:    req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, d, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		TenantID:          auth.GetTenantID(c),
		RestaurantID:      uri.ID,
		Date:              body.Date,
		StartTime:         body.StartTime,
		EndTime:           body.EndTime,
		PartySize:         body.PartySize,
		PreferredTableID:  body.PreferredTableID,
		AcceptAlternative: body.AcceptAlternative,
		Status:            statusPtr(body.Status),
		CustomerName:      body.CustomerName,
		CustomerEmail:     body.CustomerEmail,
		CustomerPhone:     body.CustomerPhone,
		Notes:             body.Notes,
	})
	if err != nil {
		commitError(c, err, d)
		return
	}

	c.JSON(http.StatusCreated, commitResponse(b, d))
}

func (h *Handler) Get(c *gin.Context) {
	var uri BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetTenantID(c), uri.RestaurantID, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, d, err := h.service.Update(c.Request.Context(), auth.GetTenantID(c), uri.RestaurantID, uri.ID, booking.UpdateRequest{
		Date:              body.Date,
		StartTime:         body.StartTime,
		EndTime:           body.EndTime,
		ClearEndTime:      body.ClearEndTime,
		PartySize:         body.PartySize,
		TableID:           body.TableID,
		AcceptAlternative: body.AcceptAlternative,
		Status:            statusPtr(body.Status),
		CustomerName:      body.CustomerName,
		CustomerEmail:     body.CustomerEmail,
		CustomerPhone:     body.CustomerPhone,
		Notes:             body.Notes,
	})
	if err != nil {
		commitError(c, err, d)
		return
	}

	c.JSON(http.StatusOK, commitResponse(b, d))
}

// Check runs the decision for a prospective booking without writing anything.
func (h *Handler) Check(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body CheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	d, err := h.service.Check(c.Request.Context(), auth.GetTenantID(c), uri.ID, body.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDecisionResponse(d))
}

func (h *Handler) FreeTables(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req FreeTablesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	tables, err := h.service.FreeTables(c.Request.Context(), auth.GetTenantID(c), uri.ID, availability.Query{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		PartySize: req.PartySize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TableTag, len(tables))
	for i := range tables {
		items[i] = *newTableTag(&tables[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Occupancy(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req OccupancyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	states, err := h.service.Occupancy(c.Request.Context(), auth.GetTenantID(c), uri.ID, req.Date, req.At)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TableStateResponse, len(states))
	for i, s := range states {
		items[i] = NewTableStateResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
