package common

import (
	"errors"
	"net/http"

	"github.com/angple/arena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// APIResponse standard success envelope
type APIResponse struct {
	Data interface{} `json:"data"`
}

// PageResponse paginated envelope. totalPages = ceil(total / limit).
type PageResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
}

// ErrorBody error envelope
type ErrorBody struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Page is a resolved page request
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the page
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// MaxPageSize caps every limit
const MaxPageSize = 100

// NewPage normalises page/limit: non-positive page -> 1, non-positive limit -> defaultLimit,
// limit above MaxPageSize -> MaxPageSize
func NewPage(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Page: page, Limit: limit}
}

// TotalPages returns ceil(total / limit)
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) > 0 {
		pages++
	}
	return pages
}

// SuccessResponse returns a 200 JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Data: data})
}

// CreatedResponse returns a 201 JSON response
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Data: data})
}

// PagedResponse returns a 200 paginated JSON response
func PagedResponse(c *gin.Context, data interface{}, page Page, total int64) {
	c.JSON(http.StatusOK, PageResponse{
		Data:       data,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: TotalPages(total, page.Limit),
	})
}

// ErrorResponse returns an error JSON response
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	body := ErrorBody{
		Error: message,
		Code:  getErrorCode(status),
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		body.Details = gin.H{"field": verr.Field, "message": verr.Message}
	case err != nil:
		body.Details = err.Error()
	}

	if status >= http.StatusInternalServerError {
		event := logger.GetLogger().Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status)
		if rid, ok := c.Get("request_id"); ok {
			event = event.Interface("request_id", rid)
		}
		event.Err(err).Msg(message)
	}

	c.JSON(status, body)
}

// HandleError maps a service error onto its status and writes the error envelope.
// fallback is the message used for unexpected (500) errors.
func HandleError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	message := fallback
	if status < http.StatusInternalServerError {
		message = publicMessage(err)
	}
	ErrorResponse(c, status, message, err)
}

func publicMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Validation failed"
	}
	return err.Error()
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 429:
		return "RATE_LIMITED"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
