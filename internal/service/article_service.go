package service

import (
	"errors"
	"strings"
	"time"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"gorm.io/gorm"
)

// ArticleService defines news article business logic
type ArticleService interface {
	ListPublished(page common.Page) ([]domain.Article, int64, error)
	ListAll(page common.Page) ([]domain.Article, int64, error)
	GetPublished(slug string) (*domain.Article, error)
	Create(actor domain.Actor, req *domain.ArticleRequest) (*domain.Article, error)
	Update(id uint64, req *domain.ArticleRequest) (*domain.Article, error)
	Delete(id uint64) error
}

type articleService struct {
	repo repository.ArticleRepository
	now  func() time.Time
}

// NewArticleService creates a new ArticleService
func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo, now: time.Now}
}

func (s *articleService) ListPublished(page common.Page) ([]domain.Article, int64, error) {
	return s.repo.ListPublished(page.Offset(), page.Limit)
}

func (s *articleService) ListAll(page common.Page) ([]domain.Article, int64, error) {
	return s.repo.ListAll(page.Offset(), page.Limit)
}

// GetPublished returns a published article and counts the view
func (s *articleService) GetPublished(slug string) (*domain.Article, error) {
	article, err := s.repo.FindPublishedBySlug(slug)
	if err != nil {
		return nil, notFound(err, common.ErrArticleNotFound)
	}
	bestEffort("article_view_count", func() error {
		return s.repo.IncrementViewCount(article.ID)
	})
	article.ViewCount++
	return article, nil
}

func (s *articleService) Create(actor domain.Actor, req *domain.ArticleRequest) (*domain.Article, error) {
	article := &domain.Article{AuthorID: actor.UserID}
	if err := s.apply(article, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrDuplicateSlug
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) Update(id uint64, req *domain.ArticleRequest) (*domain.Article, error) {
	article, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, common.ErrArticleNotFound)
	}
	if err := s.apply(article, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrDuplicateSlug
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(id uint64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return notFound(err, common.ErrArticleNotFound)
	}
	return s.repo.Delete(id)
}

// apply validates req and copies it onto article. published_at is stamped on first publish.
func (s *articleService) apply(article *domain.Article, req *domain.ArticleRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return common.NewValidationError("title", "is required")
	}
	slug := strings.TrimSpace(req.Slug)
	if !isSlug(slug) {
		return common.NewValidationError("slug", "must be lower-case letters, digits and dashes")
	}
	taken, err := s.repo.SlugExists(slug, article.ID)
	if err != nil {
		return err
	}
	if taken {
		return common.ErrDuplicateSlug
	}

	article.Slug = slug
	article.Title = title
	article.Summary = strings.TrimSpace(req.Summary)
	article.Content = req.Content
	article.CoverImageURL = strings.TrimSpace(req.CoverImageURL)
	article.IsPublished = req.IsPublished
	if article.IsPublished && article.PublishedAt == nil {
		now := s.now()
		article.PublishedAt = &now
	}
	return nil
}
