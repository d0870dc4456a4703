package handler

import (
	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// RankingHandler handles event standings and the global team ranking
type RankingHandler struct {
	service service.RankingService
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(service service.RankingService) *RankingHandler {
	return &RankingHandler{service: service}
}

// SaveStandings handles PUT /api/v1/admin/events/:id/teams
func (h *RankingHandler) SaveStandings(c *gin.Context) {
	eventID, ok := idParam(c, "id", "event")
	if !ok {
		return
	}
	var req domain.SaveStandingsRequest
	if !bindJSON(c, &req) {
		return
	}

	teams, err := h.service.SaveStandings(c.Request.Context(), eventID, &req)
	if err != nil {
		common.HandleError(c, err, "Failed to save standings")
		return
	}
	common.SuccessResponse(c, teams)
}

// EventTeams handles GET /api/v1/events/:id/teams
func (h *RankingHandler) EventTeams(c *gin.Context) {
	eventID, ok := idParam(c, "id", "event")
	if !ok {
		return
	}

	teams, err := h.service.EventTeams(eventID)
	if err != nil {
		common.HandleError(c, err, "Failed to load standings")
		return
	}
	common.SuccessResponse(c, teams)
}

// Global handles GET /api/v1/rankings
func (h *RankingHandler) Global(c *gin.Context) {
	teams, err := h.service.Global(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "Failed to load rankings")
		return
	}
	common.SuccessResponse(c, teams)
}
