package handler

import (
	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the back-office audit trail
type AuditHandler struct {
	audit *middleware.AuditLogger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit *middleware.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/v1/admin/audit-logs?user_id=
func (h *AuditHandler) List(c *gin.Context) {
	page := pageQuery(c, 50)

	logs, total, err := h.audit.List(c.Request.Context(), c.Query("user_id"), page.Offset(), page.Limit)
	if err != nil {
		common.HandleError(c, err, "Failed to load audit logs")
		return
	}
	common.PagedResponse(c, logs, page, total)
}
