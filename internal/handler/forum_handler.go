package handler

import (
	"net/http"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ForumHandler handles forum category and post requests
type ForumHandler struct {
	service service.ForumService
}

// NewForumHandler creates a new ForumHandler
func NewForumHandler(service service.ForumService) *ForumHandler {
	return &ForumHandler{service: service}
}

// ListCategories handles GET /api/v1/forum/categories
func (h *ForumHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "Failed to load categories")
		return
	}
	common.SuccessResponse(c, categories)
}

// CreateCategory handles POST /api/v1/forum/categories (admin)
func (h *ForumHandler) CreateCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err, "Failed to create category")
		return
	}
	common.CreatedResponse(c, category)
}

// ListPosts handles GET /api/v1/forum/posts?category=<slug>
func (h *ForumHandler) ListPosts(c *gin.Context) {
	page := pageQuery(c, 20)

	posts, total, err := h.service.ListPosts(c.Query("category"), page)
	if err != nil {
		common.HandleError(c, err, "Failed to load posts")
		return
	}
	common.PagedResponse(c, posts, page, total)
}

// GetPost handles GET /api/v1/forum/posts/:id
func (h *ForumHandler) GetPost(c *gin.Context) {
	id, ok := idParam(c, "id", "post")
	if !ok {
		return
	}

	post, err := h.service.GetPost(id)
	if err != nil {
		common.HandleError(c, err, "Failed to load post")
		return
	}
	common.SuccessResponse(c, post)
}

// CreatePost handles POST /api/v1/forum/posts
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		common.HandleError(c, err, "Failed to create post")
		return
	}
	common.CreatedResponse(c, post)
}

// UpdatePost handles PUT /api/v1/forum/posts/:id
func (h *ForumHandler) UpdatePost(c *gin.Context) {
	id, ok := idParam(c, "id", "post")
	if !ok {
		return
	}
	var req domain.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.service.UpdatePost(middleware.GetActor(c), id, &req)
	if err != nil {
		common.HandleError(c, err, "Failed to update post")
		return
	}
	common.SuccessResponse(c, post)
}

// DeletePost handles DELETE /api/v1/forum/posts/:id
func (h *ForumHandler) DeletePost(c *gin.Context) {
	id, ok := idParam(c, "id", "post")
	if !ok {
		return
	}

	if err := h.service.DeletePost(middleware.GetActor(c), id); err != nil {
		common.HandleError(c, err, "Failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
