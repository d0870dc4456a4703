package routes

import (
	"github.com/angple/arena-backend/internal/handler"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/internal/service"
	"github.com/angple/arena-backend/internal/ws"
	"github.com/angple/arena-backend/pkg/cache"
	"gorm.io/gorm"
)

// Deps are the shared resources handlers are built from
type Deps struct {
	DB             *gorm.DB
	EventDB        *gorm.DB // nil uses DB
	Cache          cache.Service
	Geocoder       service.Geocoder
	Hub            *ws.Hub // nil disables push and the websocket route
	AllowedOrigins string
}

// NewHandlers wires repositories, services and handlers
func NewHandlers(d Deps) Handlers {
	eventDB := d.EventDB
	if eventDB == nil {
		eventDB = d.DB
	}
	cacheService := d.Cache
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}

	// Repositories
	categoryRepo := repository.NewCategoryRepository(d.DB)
	postRepo := repository.NewPostRepository(d.DB)
	replyRepo := repository.NewReplyRepository(d.DB)
	likeRepo := repository.NewReplyLikeRepository(d.DB)
	profileRepo := repository.NewProfileRepository(d.DB)
	activityRepo := repository.NewActivityRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	articleRepo := repository.NewArticleRepository(d.DB)
	eventRepo := repository.NewEventRepository(eventDB)
	eventTeamRepo := repository.NewEventTeamRepository(eventDB)
	teamRepo := repository.NewTeamRepository(eventDB)

	// Services
	var pusher service.Pusher
	if d.Hub != nil {
		pusher = d.Hub
	}
	activityService := service.NewActivityService(activityRepo)
	notificationService := service.NewNotificationService(notificationRepo, pusher)
	forumService := service.NewForumService(categoryRepo, postRepo, profileRepo, activityService, cacheService)
	replyService := service.NewReplyService(postRepo, replyRepo, profileRepo, activityService, notificationService)
	likeService := service.NewLikeService(replyRepo, likeRepo, activityService)
	eventService := service.NewEventService(eventRepo, d.Geocoder)
	rankingService := service.NewRankingService(eventRepo, eventTeamRepo, teamRepo, cacheService)
	articleService := service.NewArticleService(articleRepo)
	auditLogger := middleware.NewAuditLogger(d.DB)

	h := Handlers{
		Forum:        handler.NewForumHandler(forumService),
		Reply:        handler.NewReplyHandler(replyService, likeService),
		Activity:     handler.NewActivityHandler(activityService),
		Event:        handler.NewEventHandler(eventService),
		Ranking:      handler.NewRankingHandler(rankingService),
		Notification: handler.NewNotificationHandler(notificationService),
		Article:      handler.NewArticleHandler(articleService),
		Audit:        handler.NewAuditHandler(auditLogger),
		AuditLogger:  auditLogger,
	}
	if d.Hub != nil {
		h.WS = handler.NewWSHandler(d.Hub, d.AllowedOrigins)
	}
	return h
}
