package domain

import "time"

// MinReplyLength is the minimum reply length in characters after trimming
const MinReplyLength = 10

// ForumCategory groups forum posts
type ForumCategory struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"column:slug;type:varchar(50);uniqueIndex" json:"slug"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	SortOrder   int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	PostCount   int       `gorm:"column:post_count;default:0" json:"post_count"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ForumCategory) TableName() string { return "forum_categories" }

// ForumPost is a forum thread.
// ReplyCount, LikeCount and ViewCount are denormalized display counters and are never recomputed.
type ForumPost struct {
	ID                uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title             string         `gorm:"column:title;type:varchar(200)" json:"title"`
	Content           string         `gorm:"column:content;type:mediumtext" json:"content"`
	ViewCount         int            `gorm:"column:view_count;default:0" json:"view_count"`
	LikeCount         int            `gorm:"column:like_count;default:0" json:"like_count"`
	ReplyCount        int            `gorm:"column:reply_count;default:0" json:"reply_count"`
	IsPinned          bool           `gorm:"column:is_pinned;default:false" json:"is_pinned"`
	IsLocked          bool           `gorm:"column:is_locked;default:false" json:"is_locked"`
	LastReplyAt       *time.Time     `gorm:"column:last_reply_at;index" json:"last_reply_at,omitempty"`
	LastReplyAuthorID *string        `gorm:"column:last_reply_author_id;type:varchar(36)" json:"last_reply_author_id,omitempty"`
	Tags              []string       `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	AuthorID          string         `gorm:"column:author_id;type:varchar(36);index" json:"author_id"`
	CategoryID        uint64         `gorm:"column:category_id;index" json:"category_id"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Author            *Profile       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category          *ForumCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Replies           []ForumReply   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (ForumPost) TableName() string { return "forum_posts" }

// ForumReply is a reply to a post. ReplyToID, when set, references a reply of the same post.
type ForumReply struct {
	ID        uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Content   string      `gorm:"column:content;type:text" json:"content"`
	LikeCount int         `gorm:"column:like_count;default:0" json:"like_count"`
	ReplyToID *uint64     `gorm:"column:reply_to_id;index" json:"reply_to_id,omitempty"`
	PostID    uint64      `gorm:"column:post_id;index" json:"post_id"`
	AuthorID  string      `gorm:"column:author_id;type:varchar(36);index" json:"author_id"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Author    *Profile    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Likes     []ReplyLike `gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (ForumReply) TableName() string { return "forum_replies" }

// ReplyLike is the like junction row. Its existence is the only truth for "user liked reply".
type ReplyLike struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReplyID   uint64    `gorm:"column:reply_id;uniqueIndex:idx_reply_user" json:"reply_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_reply_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReplyLike) TableName() string { return "forum_reply_likes" }

// CreateCategoryRequest body of POST /forum/categories
type CreateCategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// CreatePostRequest body of POST /forum/posts
type CreatePostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID uint64   `json:"category_id"`
	Tags       []string `json:"tags"`
}

// UpdatePostRequest body of PUT /forum/posts/:id. Nil fields are left unchanged.
type UpdatePostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned *bool    `json:"is_pinned"`
	IsLocked *bool    `json:"is_locked"`
}

// CreateReplyRequest body of POST /forum/posts/:id/replies.
// No binding tags: the lock check runs before any content validation.
type CreateReplyRequest struct {
	Content   string  `json:"content"`
	ReplyToID *uint64 `json:"reply_to_id"`
}

// LikeResponse result of a like toggle
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
