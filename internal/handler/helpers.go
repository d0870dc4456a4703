package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// pageQuery resolves ?page and ?limit; malformed values fall back to the defaults
func pageQuery(c *gin.Context, defaultLimit int) common.Page {
	return common.NewPage(
		ginutil.QueryInt(c, "page", 1),
		ginutil.QueryInt(c, "limit", defaultLimit),
		defaultLimit,
	)
}

// idParam parses a positive numeric path parameter, writing a 400 on failure
func idParam(c *gin.Context, key, what string) (uint64, bool) {
	id, err := ginutil.ParamUint64(c, key)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid "+what+" ID", nil)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a 400 on failure
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON that accepts an empty body
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}
