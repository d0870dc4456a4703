package handler

import (
	"net/http"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles news article requests
type ArticleHandler struct {
	service service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(service service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	page := pageQuery(c, 10)

	articles, total, err := h.service.ListPublished(page)
	if err != nil {
		common.HandleError(c, err, "Failed to load articles")
		return
	}
	common.PagedResponse(c, articles, page, total)
}

// Get handles GET /api/v1/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.service.GetPublished(c.Param("slug"))
	if err != nil {
		common.HandleError(c, err, "Failed to load article")
		return
	}
	common.SuccessResponse(c, article)
}

// AdminList handles GET /api/v1/admin/articles (drafts included)
func (h *ArticleHandler) AdminList(c *gin.Context) {
	page := pageQuery(c, 20)

	articles, total, err := h.service.ListAll(page)
	if err != nil {
		common.HandleError(c, err, "Failed to load articles")
		return
	}
	common.PagedResponse(c, articles, page, total)
}

// Create handles POST /api/v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req domain.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.service.Create(middleware.GetActor(c), &req)
	if err != nil {
		common.HandleError(c, err, "Failed to create article")
		return
	}
	common.CreatedResponse(c, article)
}

// Update handles PUT /api/v1/admin/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id", "article")
	if !ok {
		return
	}
	var req domain.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.service.Update(id, &req)
	if err != nil {
		common.HandleError(c, err, "Failed to update article")
		return
	}
	common.SuccessResponse(c, article)
}

// Delete handles DELETE /api/v1/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", "article")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		common.HandleError(c, err, "Failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}
