package service

import (
	"context"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
)

// LikeService defines reply like business logic
type LikeService interface {
	Toggle(ctx context.Context, actor domain.Actor, replyID uint64) (*domain.LikeResponse, error)
}

type likeService struct {
	replies    repository.ReplyRepository
	likes      repository.ReplyLikeRepository
	activities ActivityService
}

// NewLikeService creates a new LikeService
func NewLikeService(replies repository.ReplyRepository, likes repository.ReplyLikeRepository, activities ActivityService) LikeService {
	return &likeService{replies: replies, likes: likes, activities: activities}
}

// Toggle flips the caller's like on a reply. The junction row decides the state;
// the counter moves only when a row was actually inserted or removed.
func (s *likeService) Toggle(ctx context.Context, actor domain.Actor, replyID uint64) (*domain.LikeResponse, error) {
	reply, err := s.replies.FindByID(replyID)
	if err != nil {
		return nil, notFound(err, common.ErrReplyNotFound)
	}

	liked, err := s.likes.Exists(replyID, actor.UserID)
	if err != nil {
		return nil, err
	}

	if liked {
		removed, err := s.likes.Delete(replyID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if removed {
			bestEffort("reply_like_count", func() error {
				return s.replies.AdjustLikeCount(replyID, -1)
			})
		}
	} else {
		inserted, err := s.likes.Create(replyID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if inserted {
			bestEffort("reply_like_count", func() error {
				return s.replies.AdjustLikeCount(replyID, 1)
			})
			bestEffort("activity_like", func() error {
				return s.activities.Record(ctx, &domain.Activity{
					UserID:       actor.UserID,
					ActivityType: domain.ActivityLike,
					RelatedID:    &reply.ID,
					RelatedURL:   replyURL(reply.PostID, reply.ID),
				})
			})
		}
	}

	count, err := s.replies.LikeCount(replyID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeResponse{Liked: !liked, LikeCount: count}, nil
}
