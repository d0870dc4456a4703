package handler

import (
	"net/http"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ReplyHandler handles forum reply and reply like requests
type ReplyHandler struct {
	replies service.ReplyService
	likes   service.LikeService
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(replies service.ReplyService, likes service.LikeService) *ReplyHandler {
	return &ReplyHandler{replies: replies, likes: likes}
}

// Create handles POST /api/v1/forum/posts/:id/replies
func (h *ReplyHandler) Create(c *gin.Context) {
	postID, ok := idParam(c, "id", "post")
	if !ok {
		return
	}
	// an undecodable body is reported by the service after the lock check
	req := &domain.CreateReplyRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		req = nil
	}

	reply, err := h.replies.Create(c.Request.Context(), middleware.GetActor(c), postID, req)
	if err != nil {
		common.HandleError(c, err, "Failed to create reply")
		return
	}
	common.CreatedResponse(c, reply)
}

// List handles GET /api/v1/forum/posts/:id/replies
func (h *ReplyHandler) List(c *gin.Context) {
	postID, ok := idParam(c, "id", "post")
	if !ok {
		return
	}
	page := pageQuery(c, 20)

	replies, total, err := h.replies.List(postID, page)
	if err != nil {
		common.HandleError(c, err, "Failed to load replies")
		return
	}
	common.PagedResponse(c, replies, page, total)
}

// Delete handles DELETE /api/v1/forum/replies/:id
func (h *ReplyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "reply")
	if !ok {
		return
	}

	if err := h.replies.Delete(middleware.GetActor(c), id); err != nil {
		common.HandleError(c, err, "Failed to delete reply")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike handles POST /api/v1/forum/replies/:id/like
func (h *ReplyHandler) ToggleLike(c *gin.Context) {
	id, ok := idParam(c, "id", "reply")
	if !ok {
		return
	}

	result, err := h.likes.Toggle(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		common.HandleError(c, err, "Failed to toggle like")
		return
	}
	common.SuccessResponse(c, result)
}
