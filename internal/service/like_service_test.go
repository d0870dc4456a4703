package service

import (
	"context"
	"testing"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	replies := new(mockReplyRepo)
	likes := new(mockLikeRepo)
	activities := new(mockActivityService)
	svc := NewLikeService(replies, likes, activities)
	actor := domain.Actor{UserID: "u2"}
	reply := &domain.ForumReply{ID: 42, PostID: 7}

	replies.On("FindByID", uint64(42)).Return(reply, nil)

	// first toggle: 0 -> 1
	likes.On("Exists", uint64(42), "u2").Return(false, nil).Once()
	likes.On("Create", uint64(42), "u2").Return(true, nil).Once()
	replies.On("AdjustLikeCount", uint64(42), 1).Return(nil).Once()
	activities.On("Record", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
		return a.ActivityType == domain.ActivityLike && a.RelatedURL == "/forum/posts/7#reply-42"
	})).Return(nil).Once()
	replies.On("LikeCount", uint64(42)).Return(1, nil).Once()

	res, err := svc.Toggle(context.Background(), actor, 42)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikeCount)

	// second toggle: 1 -> 0
	likes.On("Exists", uint64(42), "u2").Return(true, nil).Once()
	likes.On("Delete", uint64(42), "u2").Return(true, nil).Once()
	replies.On("AdjustLikeCount", uint64(42), -1).Return(nil).Once()
	replies.On("LikeCount", uint64(42)).Return(0, nil).Once()

	res, err = svc.Toggle(context.Background(), actor, 42)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.LikeCount)

	replies.AssertExpectations(t)
	likes.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestToggleLike_ConcurrentDuplicateLeavesCounter(t *testing.T) {
	replies := new(mockReplyRepo)
	likes := new(mockLikeRepo)
	svc := NewLikeService(replies, likes, new(mockActivityService))

	replies.On("FindByID", uint64(42)).Return(&domain.ForumReply{ID: 42}, nil)
	likes.On("Exists", uint64(42), "u2").Return(false, nil)
	likes.On("Create", uint64(42), "u2").Return(false, nil)
	replies.On("LikeCount", uint64(42)).Return(1, nil)

	res, err := svc.Toggle(context.Background(), domain.Actor{UserID: "u2"}, 42)

	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikeCount)
	replies.AssertNotCalled(t, "AdjustLikeCount", mock.Anything, mock.Anything)
}

func TestToggleLike_ReplyNotFound(t *testing.T) {
	replies := new(mockReplyRepo)
	svc := NewLikeService(replies, new(mockLikeRepo), new(mockActivityService))
	replies.On("FindByID", uint64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Toggle(context.Background(), domain.Actor{UserID: "u2"}, 42)

	assert.ErrorIs(t, err, common.ErrReplyNotFound)
	assert.Equal(t, 404, common.StatusFor(err))
}
