package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
)

// ReplyService defines forum reply business logic
type ReplyService interface {
	Create(ctx context.Context, actor domain.Actor, postID uint64, req *domain.CreateReplyRequest) (*domain.ForumReply, error)
	List(postID uint64, page common.Page) ([]domain.ForumReply, int64, error)
	Delete(actor domain.Actor, replyID uint64) error
}

type replyService struct {
	posts         repository.PostRepository
	replies       repository.ReplyRepository
	profiles      repository.ProfileRepository
	activities    ActivityService
	notifications NotificationService
	now           func() time.Time
}

// NewReplyService creates a new ReplyService
func NewReplyService(
	posts repository.PostRepository,
	replies repository.ReplyRepository,
	profiles repository.ProfileRepository,
	activities ActivityService,
	notifications NotificationService,
) ReplyService {
	return &replyService{
		posts:         posts,
		replies:       replies,
		profiles:      profiles,
		activities:    activities,
		notifications: notifications,
		now:           time.Now,
	}
}

// Create inserts the reply. A nil req stands for an undecodable body. The counter, activity and notification writes that follow are best effort
func (s *replyService) Create(ctx context.Context, actor domain.Actor, postID uint64, req *domain.CreateReplyRequest) (*domain.ForumReply, error) {
	post, err := s.posts.FindRow(postID)
	if err != nil {
		return nil, notFound(err, common.ErrPostNotFound)
	}
	if post.IsLocked {
		return nil, common.ErrPostLocked
	}
	if req == nil {
		return nil, common.ErrInvalidBody
	}

	content := strings.TrimSpace(req.Content)
	if utf8.RuneCountInString(content) < domain.MinReplyLength {
		return nil, common.ErrContentTooShort
	}

	var quoted *domain.ForumReply
	if req.ReplyToID != nil {
		quoted, err = s.replies.FindByID(*req.ReplyToID)
		if err != nil {
			return nil, notFound(err, common.ErrReplyNotFound)
		}
		if quoted.PostID != post.ID {
			return nil, common.ErrReplyNotFound
		}
	}

	if err := s.profiles.Ensure(actor.Profile()); err != nil {
		return nil, err
	}

	reply := &domain.ForumReply{
		Content:   content,
		ReplyToID: req.ReplyToID,
		PostID:    post.ID,
		AuthorID:  actor.UserID,
	}
	if err := s.replies.Create(reply); err != nil {
		return nil, err
	}
	reply.Author = actor.Profile()

	bestEffort("post_reply_count", func() error {
		return s.posts.RecordReply(post.ID, actor.UserID, s.now())
	})
	bestEffort("profile_post_count", func() error {
		return s.profiles.IncrementPostCount(actor.UserID, 1)
	})
	bestEffort("activity_new_forum_reply", func() error {
		return s.activities.Record(ctx, &domain.Activity{
			UserID:       actor.UserID,
			ActivityType: domain.ActivityNewForumReply,
			RelatedID:    &reply.ID,
			RelatedURL:   replyURL(post.ID, reply.ID),
			Content:      post.Title,
		})
	})
	s.notify(actor, post, quoted, reply)

	return reply, nil
}

func (s *replyService) notify(actor domain.Actor, post *domain.ForumPost, quoted, reply *domain.ForumReply) {
	url := replyURL(post.ID, reply.ID)
	if post.AuthorID != actor.UserID {
		bestEffort("notify_post_author", func() error {
			return s.notifications.Notify(&domain.Notification{
				UserID:   post.AuthorID,
				Type:     domain.NotificationForumReply,
				Title:    actor.Username + " replied to " + post.Title,
				Content:  excerpt(reply.Content),
				URL:      url,
				SenderID: actor.UserID,
			})
		})
	}
	if quoted != nil && quoted.AuthorID != actor.UserID && quoted.AuthorID != post.AuthorID {
		bestEffort("notify_quoted_author", func() error {
			return s.notifications.Notify(&domain.Notification{
				UserID:   quoted.AuthorID,
				Type:     domain.NotificationReplyQuote,
				Title:    actor.Username + " answered your reply",
				Content:  excerpt(reply.Content),
				URL:      url,
				SenderID: actor.UserID,
			})
		})
	}
}

func (s *replyService) List(postID uint64, page common.Page) ([]domain.ForumReply, int64, error) {
	if _, err := s.posts.FindRow(postID); err != nil {
		return nil, 0, notFound(err, common.ErrPostNotFound)
	}
	return s.replies.ListByPost(postID, page.Offset(), page.Limit)
}

// Delete removes a reply. Admin only.
func (s *replyService) Delete(actor domain.Actor, replyID uint64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	reply, err := s.replies.FindByID(replyID)
	if err != nil {
		return notFound(err, common.ErrReplyNotFound)
	}
	if err := s.replies.Delete(replyID); err != nil {
		return err
	}
	bestEffort("post_reply_count", func() error {
		return s.posts.DecrementReplyCount(reply.PostID)
	})
	return nil
}

func excerpt(s string) string {
	const maxRunes = 100
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes]) + "…"
}
