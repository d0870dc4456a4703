package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/angple/arena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLog is one recorded back-office write
type AuditLog struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	Action     string    `gorm:"column:action;type:varchar(10);index" json:"action"` // HTTP method
	Resource   string    `gorm:"column:resource;type:varchar(200)" json:"resource"`  // route template
	ResourceID string    `gorm:"column:resource_id;type:varchar(64)" json:"resource_id,omitempty"`
	Status     int       `gorm:"column:status" json:"status"`
	ClientIP   string    `gorm:"column:client_ip;type:varchar(45)" json:"client_ip"`
	RequestID  string    `gorm:"column:request_id;type:varchar(36)" json:"request_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogger writes audit entries asynchronously
type AuditLogger struct {
	db *gorm.DB
	wg sync.WaitGroup
}

// NewAuditLogger creates a new AuditLogger and migrates its table. db may be nil.
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	if db != nil {
		if err := db.AutoMigrate(&AuditLog{}); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("audit log migration failed")
		}
	}
	return &AuditLogger{db: db}
}

// Log writes entry in the background so the request is never blocked
func (a *AuditLogger) Log(entry *AuditLog) {
	if a == nil || a.db == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.db.Create(entry).Error; err != nil {
			log := logger.ForRequest(entry.RequestID, entry.UserID)
			log.Error().Err(err).
				Str("action", entry.Action).
				Str("resource", entry.Resource).
				Msg("audit log write failed")
		}
	}()
}

// Wait blocks until pending writes finish. Used on shutdown and in tests.
func (a *AuditLogger) Wait() {
	if a != nil {
		a.wg.Wait()
	}
}

// List returns audit entries newest first, optionally filtered by user
func (a *AuditLogger) List(ctx context.Context, userID string, offset, limit int) ([]AuditLog, int64, error) {
	logs := make([]AuditLog, 0)
	var total int64
	if a == nil || a.db == nil {
		return logs, 0, nil
	}

	query := a.db.WithContext(ctx).Model(&AuditLog{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

// AuditTrail records every non-GET request that passes through it
func AuditTrail(a *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		entry := &AuditLog{
			UserID:     GetUserID(c),
			Action:     c.Request.Method,
			Resource:   c.FullPath(),
			ResourceID: c.Param("id"),
			Status:     c.Writer.Status(),
			ClientIP:   c.ClientIP(),
			RequestID:  c.GetString("request_id"),
		}
		if entry.Resource == "" {
			entry.Resource = c.Request.URL.Path
		}
		a.Log(entry)
	}
}
