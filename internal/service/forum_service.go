package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/pkg/cache"
	pkglogger "github.com/angple/arena-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	minTitleLength   = 5
	maxTitleLength   = 200
	minContentLength = 10
	maxTags          = 5
)

// ForumService defines forum category and post business logic
type ForumService interface {
	ListCategories(ctx context.Context) ([]domain.ForumCategory, error)
	CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.ForumCategory, error)
	ListPosts(categorySlug string, page common.Page) ([]domain.ForumPost, int64, error)
	GetPost(id uint64) (*domain.ForumPost, error)
	CreatePost(ctx context.Context, actor domain.Actor, req *domain.CreatePostRequest) (*domain.ForumPost, error)
	UpdatePost(actor domain.Actor, id uint64, req *domain.UpdatePostRequest) (*domain.ForumPost, error)
	DeletePost(actor domain.Actor, id uint64) error
}

type forumService struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
	profiles   repository.ProfileRepository
	activities ActivityService
	cache      cache.Service
}

// NewForumService creates a new ForumService
func NewForumService(
	categories repository.CategoryRepository,
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
	activities ActivityService,
	cacheService cache.Service,
) ForumService {
	return &forumService{
		categories: categories,
		posts:      posts,
		profiles:   profiles,
		activities: activities,
		cache:      cacheService,
	}
}

func (s *forumService) ListCategories(ctx context.Context) ([]domain.ForumCategory, error) {
	var cached []domain.ForumCategory
	if err := s.cache.Get(ctx, cache.KeyCategories, &cached); err == nil {
		return cached, nil
	}

	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.KeyCategories, categories, cache.TTLCategories); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to cache categories")
	}
	return categories, nil
}

func (s *forumService) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.ForumCategory, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !isSlug(slug) {
		return nil, common.NewValidationError("slug", "must be lower-case letters, digits and dashes")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, common.NewValidationError("name", "is required")
	}

	category := &domain.ForumCategory{
		Slug:        slug,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		SortOrder:   req.SortOrder,
	}
	if err := s.categories.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrDuplicateSlug
		}
		return nil, err
	}
	bestEffort("invalidate_categories", func() error {
		return s.cache.Delete(ctx, cache.KeyCategories)
	})
	return category, nil
}

func (s *forumService) ListPosts(categorySlug string, page common.Page) ([]domain.ForumPost, int64, error) {
	var categoryID uint64
	if categorySlug != "" {
		category, err := s.categories.FindBySlug(categorySlug)
		if err != nil {
			return nil, 0, notFound(err, common.ErrCategoryNotFound)
		}
		categoryID = category.ID
	}
	return s.posts.List(categoryID, page.Offset(), page.Limit)
}

// GetPost loads the full thread and counts the view
func (s *forumService) GetPost(id uint64) (*domain.ForumPost, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, notFound(err, common.ErrPostNotFound)
	}

	bestEffort("post_view_count", func() error {
		return s.posts.IncrementViewCount(id)
	})
	post.ViewCount++
	return post, nil
}

func (s *forumService) CreatePost(ctx context.Context, actor domain.Actor, req *domain.CreatePostRequest) (*domain.ForumPost, error) {
	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n < minTitleLength || n > maxTitleLength {
		return nil, common.NewValidationError("title", "must be between 5 and 200 characters")
	}
	content := strings.TrimSpace(req.Content)
	if utf8.RuneCountInString(content) < minContentLength {
		return nil, common.NewValidationError("content", "must be at least 10 characters")
	}
	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		return nil, notFound(err, common.ErrCategoryNotFound)
	}
	if err := s.profiles.Ensure(actor.Profile()); err != nil {
		return nil, err
	}

	post := &domain.ForumPost{
		Title:      title,
		Content:    content,
		Tags:       NormalizeTags(req.Tags),
		AuthorID:   actor.UserID,
		CategoryID: req.CategoryID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	bestEffort("profile_post_count", func() error {
		return s.profiles.IncrementPostCount(actor.UserID, 1)
	})
	bestEffort("category_post_count", func() error {
		return s.categories.IncrementPostCount(post.CategoryID, 1)
	})
	bestEffort("activity_new_forum_post", func() error {
		return s.activities.Record(ctx, &domain.Activity{
			UserID:       actor.UserID,
			ActivityType: domain.ActivityNewForumPost,
			RelatedID:    &post.ID,
			RelatedURL:   postURL(post.ID),
			Content:      post.Title,
		})
	})
	return post, nil
}

func (s *forumService) UpdatePost(actor domain.Actor, id uint64, req *domain.UpdatePostRequest) (*domain.ForumPost, error) {
	post, err := s.posts.FindRow(id)
	if err != nil {
		return nil, notFound(err, common.ErrPostNotFound)
	}
	if post.AuthorID != actor.UserID && !actor.Role.IsStaff() {
		return nil, common.ErrForbidden
	}
	if (req.IsPinned != nil || req.IsLocked != nil) && !actor.Role.IsStaff() {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if n := utf8.RuneCountInString(title); n < minTitleLength || n > maxTitleLength {
			return nil, common.NewValidationError("title", "must be between 5 and 200 characters")
		}
		post.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if utf8.RuneCountInString(content) < minContentLength {
			return nil, common.NewValidationError("content", "must be at least 10 characters")
		}
		post.Content = content
	}
	if req.Tags != nil {
		post.Tags = NormalizeTags(req.Tags)
	}
	if req.IsPinned != nil {
		post.IsPinned = *req.IsPinned
	}
	if req.IsLocked != nil {
		post.IsLocked = *req.IsLocked
	}

	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *forumService) DeletePost(actor domain.Actor, id uint64) error {
	post, err := s.posts.FindRow(id)
	if err != nil {
		return notFound(err, common.ErrPostNotFound)
	}
	if post.AuthorID != actor.UserID && !actor.Role.IsStaff() {
		return common.ErrForbidden
	}
	if err := s.posts.Delete(id); err != nil {
		return err
	}
	bestEffort("category_post_count", func() error {
		return s.categories.IncrementPostCount(post.CategoryID, -1)
	})
	bestEffort("profile_post_count", func() error {
		return s.profiles.IncrementPostCount(post.AuthorID, -1)
	})
	return nil
}

// NormalizeTags trims, lower-cases and de-duplicates tags, keeping the first five
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

func postURL(postID uint64) string {
	return "/forum/posts/" + strconv.FormatUint(postID, 10)
}

func replyURL(postID, replyID uint64) string {
	return postURL(postID) + "#reply-" + strconv.FormatUint(replyID, 10)
}

// notFound maps gorm's missing-row error onto the domain error
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// isSlug reports whether s is lower-kebab: [a-z0-9]+(-[a-z0-9]+)*
func isSlug(s string) bool {
	if s == "" || len(s) > 120 || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevDash = false
		case r == '-':
			if prevDash {
				return false
			}
			prevDash = true
		default:
			return false
		}
	}
	return true
}
