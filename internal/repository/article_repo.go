package repository

import (
	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// ArticleRepository news article data access
type ArticleRepository interface {
	FindByID(id uint64) (*domain.Article, error)
	FindPublishedBySlug(slug string) (*domain.Article, error)
	ListPublished(offset, limit int) ([]domain.Article, int64, error)
	ListAll(offset, limit int) ([]domain.Article, int64, error)
	SlugExists(slug string, exceptID uint64) (bool, error)
	Create(article *domain.Article) error
	Update(article *domain.Article) error
	Delete(id uint64) error
	IncrementViewCount(id uint64) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindByID(id uint64) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindPublishedBySlug(slug string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.Where("slug = ? AND is_published = ?", slug, true).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListPublished(offset, limit int) ([]domain.Article, int64, error) {
	return r.list(r.db.Model(&domain.Article{}).Where("is_published = ?", true), offset, limit)
}

func (r *articleRepository) ListAll(offset, limit int) ([]domain.Article, int64, error) {
	return r.list(r.db.Model(&domain.Article{}), offset, limit)
}

func (r *articleRepository) list(query *gorm.DB, offset, limit int) ([]domain.Article, int64, error) {
	var articles []domain.Article
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("published_at DESC, id DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) SlugExists(slug string, exceptID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Article{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) Create(article *domain.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) Update(article *domain.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Article{}, id).Error
}

func (r *articleRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.Article{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
