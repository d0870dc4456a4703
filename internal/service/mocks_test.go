package service

import (
	"context"
	"time"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/internal/ws"
	"github.com/angple/arena-backend/pkg/geocode"
	"github.com/stretchr/testify/mock"
)

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) List() ([]domain.ForumCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ForumCategory), args.Error(1)
}

func (m *mockCategoryRepo) FindByID(id uint64) (*domain.ForumCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumCategory), args.Error(1)
}

func (m *mockCategoryRepo) FindBySlug(slug string) (*domain.ForumCategory, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumCategory), args.Error(1)
}

func (m *mockCategoryRepo) Create(category *domain.ForumCategory) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryRepo) IncrementPostCount(id uint64, delta int) error {
	return m.Called(id, delta).Error(0)
}

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(id uint64) (*domain.ForumPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumPost), args.Error(1)
}

func (m *mockPostRepo) FindRow(id uint64) (*domain.ForumPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumPost), args.Error(1)
}

func (m *mockPostRepo) List(categoryID uint64, offset, limit int) ([]domain.ForumPost, int64, error) {
	args := m.Called(categoryID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ForumPost), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) Create(post *domain.ForumPost) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) Update(post *domain.ForumPost) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) IncrementViewCount(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) RecordReply(id uint64, authorID string, at time.Time) error {
	return m.Called(id, authorID, at).Error(0)
}

func (m *mockPostRepo) DecrementReplyCount(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock ReplyRepository ---

type mockReplyRepo struct {
	mock.Mock
}

func (m *mockReplyRepo) FindByID(id uint64) (*domain.ForumReply, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumReply), args.Error(1)
}

func (m *mockReplyRepo) ListByPost(postID uint64, offset, limit int) ([]domain.ForumReply, int64, error) {
	args := m.Called(postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ForumReply), args.Get(1).(int64), args.Error(2)
}

func (m *mockReplyRepo) Create(reply *domain.ForumReply) error {
	return m.Called(reply).Error(0)
}

func (m *mockReplyRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockReplyRepo) AdjustLikeCount(id uint64, delta int) error {
	return m.Called(id, delta).Error(0)
}

func (m *mockReplyRepo) LikeCount(id uint64) (int, error) {
	args := m.Called(id)
	return args.Int(0), args.Error(1)
}

// --- Mock ReplyLikeRepository ---

type mockLikeRepo struct {
	mock.Mock
}

func (m *mockLikeRepo) Exists(replyID uint64, userID string) (bool, error) {
	args := m.Called(replyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) Create(replyID uint64, userID string) (bool, error) {
	args := m.Called(replyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) Delete(replyID uint64, userID string) (bool, error) {
	args := m.Called(replyID, userID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ProfileRepository ---

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindByID(id string) (*domain.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Ensure(profile *domain.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *mockProfileRepo) IncrementPostCount(id string, delta int) error {
	return m.Called(id, delta).Error(0)
}

// --- Mock ActivityRepository ---

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *mockActivityRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *mockActivityRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ActivityService ---

type mockActivityService struct {
	mock.Mock
}

func (m *mockActivityService) Record(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *mockActivityService) Feed(ctx context.Context, userID string, page common.Page) ([]domain.Activity, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Activity), args.Get(1).(int64), args.Error(2)
}

// --- Mock NotificationService ---

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) Notify(n *domain.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotificationService) List(userID string, page common.Page) ([]domain.Notification, int64, error) {
	args := m.Called(userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationService) UnreadCount(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) MarkAsRead(userID string, id uint64) error {
	return m.Called(userID, id).Error(0)
}

func (m *mockNotificationService) MarkAllAsRead(userID string) error {
	return m.Called(userID).Error(0)
}

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(n *domain.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotificationRepo) List(userID string, offset, limit int) ([]domain.Notification, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) UnreadCount(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(id uint64, userID string) (bool, error) {
	args := m.Called(id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkAllAsRead(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Pusher ---

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) SendToUser(userID string, event *ws.Event) {
	m.Called(userID, event)
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) FindByID(id uint64) (*domain.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepo) List(upcomingFrom *time.Time, offset, limit int) ([]domain.Event, int64, error) {
	args := m.Called(upcomingFrom, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) WithinBounds(b repository.Bounds) ([]domain.Event, error) {
	args := m.Called(b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) Create(event *domain.Event) error {
	return m.Called(event).Error(0)
}

func (m *mockEventRepo) Update(event *domain.Event) error {
	return m.Called(event).Error(0)
}

func (m *mockEventRepo) UpdateLocation(id uint64, address string, lat, lng float64) error {
	return m.Called(id, address, lat, lng).Error(0)
}

func (m *mockEventRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock EventTeamRepository ---

type mockEventTeamRepo struct {
	mock.Mock
}

func (m *mockEventTeamRepo) ListByEvent(eventID uint64) ([]domain.EventTeam, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventTeam), args.Error(1)
}

func (m *mockEventTeamRepo) Save(teams []*domain.EventTeam) error {
	return m.Called(teams).Error(0)
}

// --- Mock TeamRepository ---

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) List() ([]domain.Team, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *mockTeamRepo) Accumulate(rows []domain.EventTeam) error {
	return m.Called(rows).Error(0)
}

func (m *mockTeamRepo) SavePositions(teams []domain.Team) error {
	return m.Called(teams).Error(0)
}

// --- Mock ArticleRepository ---

type mockArticleRepo struct {
	mock.Mock
}

func (m *mockArticleRepo) FindByID(id uint64) (*domain.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) FindPublishedBySlug(slug string) (*domain.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) ListPublished(offset, limit int) ([]domain.Article, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *mockArticleRepo) ListAll(offset, limit int) ([]domain.Article, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *mockArticleRepo) SlugExists(slug string, exceptID uint64) (bool, error) {
	args := m.Called(slug, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *mockArticleRepo) Create(article *domain.Article) error {
	return m.Called(article).Error(0)
}

func (m *mockArticleRepo) Update(article *domain.Article) error {
	return m.Called(article).Error(0)
}

func (m *mockArticleRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockArticleRepo) IncrementViewCount(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock Geocoder ---

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Result), args.Error(1)
}
