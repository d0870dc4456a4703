package handler

import (
	"net/http"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/angple/arena-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event listing, editing and geolocation requests
type EventHandler struct {
	service service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /api/v1/events?upcoming=true
func (h *EventHandler) List(c *gin.Context) {
	page := pageQuery(c, 20)

	events, total, err := h.service.List(ginutil.QueryBool(c, "upcoming", false), page)
	if err != nil {
		common.HandleError(c, err, "Failed to load events")
		return
	}
	common.PagedResponse(c, events, page, total)
}

// Get handles GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.service.Get(id)
	if err != nil {
		common.HandleError(c, err, "Failed to load event")
		return
	}
	common.SuccessResponse(c, event)
}

// Nearby handles GET /api/v1/events/nearby?lat&lng&radius_km
func (h *EventHandler) Nearby(c *gin.Context) {
	lat, okLat := ginutil.QueryFloat(c, "lat")
	lng, okLng := ginutil.QueryFloat(c, "lng")
	if !okLat || !okLng {
		common.ErrorResponse(c, http.StatusBadRequest, "lat and lng are required",
			common.NewValidationError("lat,lng", "must be numeric"))
		return
	}
	radius, _ := ginutil.QueryFloat(c, "radius_km")

	events, err := h.service.Nearby(lat, lng, radius)
	if err != nil {
		common.HandleError(c, err, "Failed to search events")
		return
	}
	common.SuccessResponse(c, events)
}

// Create handles POST /api/v1/admin/events
func (h *EventHandler) Create(c *gin.Context) {
	var req domain.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.service.Create(middleware.GetActor(c), &req)
	if err != nil {
		common.HandleError(c, err, "Failed to create event")
		return
	}
	common.CreatedResponse(c, event)
}

// Update handles PUT /api/v1/admin/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id", "event")
	if !ok {
		return
	}
	var req domain.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.service.Update(id, &req)
	if err != nil {
		common.HandleError(c, err, "Failed to update event")
		return
	}
	common.SuccessResponse(c, event)
}

// Delete handles DELETE /api/v1/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "event")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		common.HandleError(c, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}

// Geocode handles POST /api/v1/admin/events/:id/geocode
func (h *EventHandler) Geocode(c *gin.Context) {
	id, ok := idParam(c, "id", "event")
	if !ok {
		return
	}
	var req domain.GeocodeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	event, err := h.service.Geolocate(c.Request.Context(), id, req.Address)
	if err != nil {
		common.HandleError(c, err, "Failed to geocode address")
		return
	}
	common.SuccessResponse(c, event)
}
