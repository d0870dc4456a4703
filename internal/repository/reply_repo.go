package repository

import (
	"errors"

	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// ReplyRepository forum reply data access
type ReplyRepository interface {
	FindByID(id uint64) (*domain.ForumReply, error)
	ListByPost(postID uint64, offset, limit int) ([]domain.ForumReply, int64, error)
	Create(reply *domain.ForumReply) error
	Delete(id uint64) error
	AdjustLikeCount(id uint64, delta int) error
	LikeCount(id uint64) (int, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) FindByID(id uint64) (*domain.ForumReply, error) {
	var reply domain.ForumReply
	if err := r.db.First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListByPost returns replies of a post, oldest first
func (r *replyRepository) ListByPost(postID uint64, offset, limit int) ([]domain.ForumReply, int64, error) {
	var replies []domain.ForumReply
	var total int64

	query := r.db.Model(&domain.ForumReply{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Author").
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&replies).Error
	return replies, total, err
}

func (r *replyRepository) Create(reply *domain.ForumReply) error {
	return r.db.Omit("Author", "Likes").Create(reply).Error
}

func (r *replyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", id).Delete(&domain.ReplyLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ForumReply{}, id).Error
	})
}

func (r *replyRepository) AdjustLikeCount(id uint64, delta int) error {
	return r.db.Model(&domain.ForumReply{}).Where("id = ?", id).
		UpdateColumn("like_count", floorExpr("like_count", delta)).Error
}

func (r *replyRepository) LikeCount(id uint64) (int, error) {
	var count int
	err := r.db.Model(&domain.ForumReply{}).Select("like_count").Where("id = ?", id).Scan(&count).Error
	return count, err
}

// ReplyLikeRepository like junction data access
type ReplyLikeRepository interface {
	Exists(replyID uint64, userID string) (bool, error)
	// Create returns true when a row was inserted, false when one already existed
	Create(replyID uint64, userID string) (bool, error)
	// Delete returns true when a row was removed
	Delete(replyID uint64, userID string) (bool, error)
}

type replyLikeRepository struct {
	db *gorm.DB
}

// NewReplyLikeRepository creates a new ReplyLikeRepository
func NewReplyLikeRepository(db *gorm.DB) ReplyLikeRepository {
	return &replyLikeRepository{db: db}
}

func (r *replyLikeRepository) Exists(replyID uint64, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ReplyLike{}).
		Where("reply_id = ? AND user_id = ?", replyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *replyLikeRepository) Create(replyID uint64, userID string) (bool, error) {
	err := r.db.Create(&domain.ReplyLike{ReplyID: replyID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *replyLikeRepository) Delete(replyID uint64, userID string) (bool, error) {
	res := r.db.Where("reply_id = ? AND user_id = ?", replyID, userID).Delete(&domain.ReplyLike{})
	return res.RowsAffected > 0, res.Error
}
