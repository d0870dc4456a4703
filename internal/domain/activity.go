package domain

import "time"

// ActivityType is the kind of a logged user activity
type ActivityType string

const (
	ActivityNewForumPost  ActivityType = "new_forum_post"
	ActivityNewForumReply ActivityType = "new_forum_reply"
	ActivityLike          ActivityType = "like"
	ActivityBookmark      ActivityType = "bookmark"
	ActivityShare         ActivityType = "share"
	ActivityView          ActivityType = "view"
)

// Activity is an append-only log row of something a user did
type Activity struct {
	ID           uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       string       `gorm:"column:user_id;type:varchar(36);index:idx_activity_user_created,priority:1" json:"user_id"`
	ActivityType ActivityType `gorm:"column:activity_type;type:varchar(32)" json:"activity_type"`
	RelatedID    *uint64      `gorm:"column:related_id" json:"related_id,omitempty"`
	RelatedURL   string       `gorm:"column:related_url;type:varchar(500)" json:"related_url,omitempty"`
	Content      string       `gorm:"column:content;type:text" json:"content,omitempty"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime;index:idx_activity_user_created,priority:2" json:"created_at"`
}

func (Activity) TableName() string { return "user_activities" }
