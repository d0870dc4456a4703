package service

import (
	"context"
	"errors"
	"testing"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type forumFixture struct {
	categories *mockCategoryRepo
	posts      *mockPostRepo
	profiles   *mockProfileRepo
	activities *mockActivityService
	svc        ForumService
}

func newForumFixture() *forumFixture {
	f := &forumFixture{
		categories: new(mockCategoryRepo),
		posts:      new(mockPostRepo),
		profiles:   new(mockProfileRepo),
		activities: new(mockActivityService),
	}
	f.svc = NewForumService(f.categories, f.posts, f.profiles, f.activities, cache.NewService(nil))
	return f
}

func TestGetPost_IncrementsViewCount(t *testing.T) {
	f := newForumFixture()
	f.posts.On("FindByID", uint64(7)).Return(&domain.ForumPost{ID: 7, ViewCount: 41}, nil)
	f.posts.On("IncrementViewCount", uint64(7)).Return(nil)

	post, err := f.svc.GetPost(7)

	require.NoError(t, err)
	assert.Equal(t, 42, post.ViewCount)
	f.posts.AssertExpectations(t)
}

func TestGetPost_ViewCountFailureIgnored(t *testing.T) {
	f := newForumFixture()
	f.posts.On("FindByID", uint64(7)).Return(&domain.ForumPost{ID: 7}, nil)
	f.posts.On("IncrementViewCount", uint64(7)).Return(errors.New("lock wait timeout"))

	post, err := f.svc.GetPost(7)

	require.NoError(t, err)
	assert.Equal(t, 1, post.ViewCount)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newForumFixture()
	f.posts.On("FindByID", uint64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.GetPost(7)

	assert.ErrorIs(t, err, common.ErrPostNotFound)
	f.posts.AssertNotCalled(t, "IncrementViewCount", mock.Anything)
}

func TestCreatePost_Success(t *testing.T) {
	f := newForumFixture()
	actor := domain.Actor{UserID: "u1", Username: "alice"}
	f.categories.On("FindByID", uint64(2)).Return(&domain.ForumCategory{ID: 2}, nil)
	f.profiles.On("Ensure", mock.MatchedBy(func(p *domain.Profile) bool {
		return p.ID == "u1" && p.Username == "alice" && p.Role == domain.RoleUser
	})).Return(nil)
	f.posts.On("Create", mock.AnythingOfType("*domain.ForumPost")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.ForumPost).ID = 9
	}).Return(nil)
	f.profiles.On("IncrementPostCount", "u1", 1).Return(nil)
	f.categories.On("IncrementPostCount", uint64(2), 1).Return(nil)
	f.activities.On("Record", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
		return a.ActivityType == domain.ActivityNewForumPost && a.RelatedURL == "/forum/posts/9"
	})).Return(nil)

	post, err := f.svc.CreatePost(context.Background(), actor, &domain.CreatePostRequest{
		Title:      "  Worlds predictions  ",
		Content:    "Who takes it this year?",
		CategoryID: 2,
		Tags:       []string{" LoL ", "lol", "worlds", ""},
	})

	require.NoError(t, err)
	assert.Equal(t, "Worlds predictions", post.Title)
	assert.Equal(t, []string{"lol", "worlds"}, post.Tags)
	f.activities.AssertExpectations(t)
	f.categories.AssertExpectations(t)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newForumFixture()
	actor := domain.Actor{UserID: "u1"}

	_, err := f.svc.CreatePost(context.Background(), actor, &domain.CreatePostRequest{Title: "Hey", Content: "long enough body", CategoryID: 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = f.svc.CreatePost(context.Background(), actor, &domain.CreatePostRequest{Title: "Valid title", Content: "short", CategoryID: 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	f.categories.On("FindByID", uint64(404)).Return(nil, gorm.ErrRecordNotFound)
	_, err = f.svc.CreatePost(context.Background(), actor, &domain.CreatePostRequest{Title: "Valid title", Content: "long enough body", CategoryID: 404})
	assert.ErrorIs(t, err, common.ErrCategoryNotFound)

	f.posts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdatePost_Permissions(t *testing.T) {
	f := newForumFixture()
	f.posts.On("FindRow", uint64(7)).Return(&domain.ForumPost{ID: 7, AuthorID: "u1", Title: "Original title"}, nil)
	locked := true

	_, err := f.svc.UpdatePost(domain.Actor{UserID: "u2"}, 7, &domain.UpdatePostRequest{})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = f.svc.UpdatePost(domain.Actor{UserID: "u1"}, 7, &domain.UpdatePostRequest{IsLocked: &locked})
	assert.ErrorIs(t, err, common.ErrForbidden, "authors cannot lock their own post")

	f.posts.On("Update", mock.AnythingOfType("*domain.ForumPost")).Return(nil)
	post, err := f.svc.UpdatePost(domain.Actor{UserID: "mod", Role: domain.RoleModerator}, 7, &domain.UpdatePostRequest{IsLocked: &locked})
	require.NoError(t, err)
	assert.True(t, post.IsLocked)
}

func TestDeletePost_AuthorOrStaff(t *testing.T) {
	f := newForumFixture()
	f.posts.On("FindRow", uint64(7)).Return(&domain.ForumPost{ID: 7, AuthorID: "u1", CategoryID: 2}, nil)

	err := f.svc.DeletePost(domain.Actor{UserID: "u2"}, 7)
	assert.ErrorIs(t, err, common.ErrForbidden)

	f.posts.On("Delete", uint64(7)).Return(nil)
	f.categories.On("IncrementPostCount", uint64(2), -1).Return(nil)
	f.profiles.On("IncrementPostCount", "u1", -1).Return(nil)
	require.NoError(t, f.svc.DeletePost(domain.Actor{UserID: "u1"}, 7))
	f.posts.AssertCalled(t, "Delete", uint64(7))
}

func TestListPosts_UnknownCategory(t *testing.T) {
	f := newForumFixture()
	f.categories.On("FindBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := f.svc.ListPosts("nope", common.NewPage(1, 20, 20))

	assert.ErrorIs(t, err, common.ErrCategoryNotFound)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	f := newForumFixture()
	f.categories.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := f.svc.CreateCategory(context.Background(), &domain.CreateCategoryRequest{Slug: "general", Name: "General"})

	assert.ErrorIs(t, err, common.ErrDuplicateSlug)
}

func TestNormalizeTags_CapsAtFive(t *testing.T) {
	got := NormalizeTags([]string{"a", "B", "c", "d", "e", "f", "a"})
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	assert.NotNil(t, NormalizeTags(nil))
}

func TestIsSlug(t *testing.T) {
	assert.True(t, isSlug("patch-14-2"))
	assert.False(t, isSlug("Patch"))
	assert.False(t, isSlug("double--dash"))
	assert.False(t, isSlug("-lead"))
	assert.False(t, isSlug(""))
}
