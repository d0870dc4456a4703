package domain

import "time"

// Article is a news item published by staff
type Article struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug          string     `gorm:"column:slug;type:varchar(120);uniqueIndex" json:"slug"`
	Title         string     `gorm:"column:title;type:varchar(200)" json:"title"`
	Summary       string     `gorm:"column:summary;type:varchar(500)" json:"summary,omitempty"`
	Content       string     `gorm:"column:content;type:mediumtext" json:"content"`
	CoverImageURL string     `gorm:"column:cover_image_url;type:varchar(500)" json:"cover_image_url,omitempty"`
	AuthorID      string     `gorm:"column:author_id;type:varchar(36)" json:"author_id"`
	IsPublished   bool       `gorm:"column:is_published;default:false;index" json:"is_published"`
	PublishedAt   *time.Time `gorm:"column:published_at;index" json:"published_at,omitempty"`
	ViewCount     int        `gorm:"column:view_count;default:0" json:"view_count"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

// ArticleRequest body of POST/PUT /admin/articles
type ArticleRequest struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	IsPublished   bool   `json:"is_published"`
}
