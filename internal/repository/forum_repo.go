package repository

import (
	"time"

	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository forum category data access
type CategoryRepository interface {
	List() ([]domain.ForumCategory, error)
	FindByID(id uint64) (*domain.ForumCategory, error)
	FindBySlug(slug string) (*domain.ForumCategory, error)
	Create(category *domain.ForumCategory) error
	IncrementPostCount(id uint64, delta int) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List() ([]domain.ForumCategory, error) {
	var categories []domain.ForumCategory
	err := r.db.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindByID(id uint64) (*domain.ForumCategory, error) {
	var category domain.ForumCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*domain.ForumCategory, error) {
	var category domain.ForumCategory
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *domain.ForumCategory) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) IncrementPostCount(id uint64, delta int) error {
	return r.db.Model(&domain.ForumCategory{}).Where("id = ?", id).
		UpdateColumn("post_count", floorExpr("post_count", delta)).Error
}

// PostRepository forum post data access
type PostRepository interface {
	FindByID(id uint64) (*domain.ForumPost, error)
	FindRow(id uint64) (*domain.ForumPost, error)
	List(categoryID uint64, offset, limit int) ([]domain.ForumPost, int64, error)
	Create(post *domain.ForumPost) error
	Update(post *domain.ForumPost) error
	Delete(id uint64) error
	IncrementViewCount(id uint64) error
	RecordReply(id uint64, authorID string, at time.Time) error
	DecrementReplyCount(id uint64) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id uint64) (*domain.ForumPost, error) {
	var post domain.ForumPost
	err := r.db.Preload("Author").Preload("Category").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Replies.Author").Preload("Replies.Likes").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindRow loads the bare post row without associations
func (r *postRepository) FindRow(id uint64) (*domain.ForumPost, error) {
	var post domain.ForumPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts of a category (0 = all), pinned first then by last activity
func (r *postRepository) List(categoryID uint64, offset, limit int) ([]domain.ForumPost, int64, error) {
	var posts []domain.ForumPost
	var total int64

	query := r.db.Model(&domain.ForumPost{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Author").
		Order("is_pinned DESC").
		Order("COALESCE(last_reply_at, created_at) DESC").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) Create(post *domain.ForumPost) error {
	return r.db.Omit("Author", "Category", "Replies").Create(post).Error
}

func (r *postRepository) Update(post *domain.ForumPost) error {
	return r.db.Model(post).
		Select("title", "content", "tags", "is_pinned", "is_locked").
		Updates(post).Error
}

func (r *postRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&domain.ForumReply{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&domain.ReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.ForumReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ForumPost{}, id).Error
	})
}

func (r *postRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.ForumPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// RecordReply bumps reply_count and stamps the last reply in one statement
func (r *postRepository) RecordReply(id uint64, authorID string, at time.Time) error {
	return r.db.Model(&domain.ForumPost{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"reply_count":          gorm.Expr("reply_count + 1"),
			"last_reply_at":        at,
			"last_reply_author_id": authorID,
		}).Error
}

func (r *postRepository) DecrementReplyCount(id uint64) error {
	return r.db.Model(&domain.ForumPost{}).Where("id = ?", id).
		UpdateColumn("reply_count", floorExpr("reply_count", -1)).Error
}

// floorExpr adds delta to column without going below zero
func floorExpr(column string, delta int) interface{} {
	return gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
}
