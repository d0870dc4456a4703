package handler

import (
	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err, "Failed to count notifications")
		return
	}
	common.SuccessResponse(c, domain.UnreadCountResponse{Unread: count})
}

// GetList handles GET /api/v1/notifications
func (h *NotificationHandler) GetList(c *gin.Context) {
	page := pageQuery(c, 20)

	items, total, err := h.service.List(middleware.GetUserID(c), page)
	if err != nil {
		common.HandleError(c, err, "Failed to load notifications")
		return
	}
	common.PagedResponse(c, items, page, total)
}

// MarkAsRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := idParam(c, "id", "notification")
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(middleware.GetUserID(c), id); err != nil {
		common.HandleError(c, err, "Failed to update notification")
		return
	}
	common.SuccessResponse(c, gin.H{"read": true})
}

// MarkAllAsRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(middleware.GetUserID(c)); err != nil {
		common.HandleError(c, err, "Failed to update notifications")
		return
	}
	common.SuccessResponse(c, gin.H{"read": true})
}
