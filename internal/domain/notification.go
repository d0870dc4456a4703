package domain

import "time"

// Notification types
const (
	NotificationForumReply = "forum_reply"
	NotificationReplyQuote = "reply_quote"
)

// Notification is a per-user inbox entry
type Notification struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	Type      string    `gorm:"column:type;type:varchar(32)" json:"type"`
	Title     string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content,omitempty"`
	URL       string    `gorm:"column:url;type:varchar(500)" json:"url,omitempty"`
	SenderID  string    `gorm:"column:sender_id;type:varchar(36)" json:"sender_id,omitempty"`
	IsRead    bool      `gorm:"column:is_read;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// UnreadCountResponse body of GET /notifications/unread-count
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
