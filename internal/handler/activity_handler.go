package handler

import (
	"net/http"
	"strings"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	publicFeedLimit = 15
	ownFeedLimit    = 20
)

// ActivityHandler serves user activity feeds
type ActivityHandler struct {
	service service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(service service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// UserFeed handles GET /api/v1/users/:id/activity
func (h *ActivityHandler) UserFeed(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}
	h.feed(c, userID, publicFeedLimit)
}

// MyFeed handles GET /api/v1/me/activity
func (h *ActivityHandler) MyFeed(c *gin.Context) {
	h.feed(c, middleware.GetUserID(c), ownFeedLimit)
}

func (h *ActivityHandler) feed(c *gin.Context, userID string, defaultLimit int) {
	page := pageQuery(c, defaultLimit)

	items, total, err := h.service.Feed(c.Request.Context(), userID, page)
	if err != nil {
		common.HandleError(c, err, "Failed to load activity")
		return
	}
	common.PagedResponse(c, items, page, total)
}
