package service

import (
	"context"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ActivityService reads and appends the user activity log
type ActivityService interface {
	Record(ctx context.Context, activity *domain.Activity) error
	Feed(ctx context.Context, userID string, page common.Page) ([]domain.Activity, int64, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, activity *domain.Activity) error {
	return s.repo.Create(ctx, activity)
}

// Feed fetches the total and the requested page concurrently
func (s *activityService) Feed(ctx context.Context, userID string, page common.Page) ([]domain.Activity, int64, error) {
	var (
		items []domain.Activity
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.ListByUser(gctx, userID, page.Offset(), page.Limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.Activity{}
	}
	return items, total, nil
}
