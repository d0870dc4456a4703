package routes

import (
	"github.com/angple/arena-backend/internal/config"
	"github.com/angple/arena-backend/internal/handler"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler mounted under /api/v1
type Handlers struct {
	Forum        *handler.ForumHandler
	Reply        *handler.ReplyHandler
	Activity     *handler.ActivityHandler
	Event        *handler.EventHandler
	Ranking      *handler.RankingHandler
	Notification *handler.NotificationHandler
	Article      *handler.ArticleHandler
	WS           *handler.WSHandler
	Audit        *handler.AuditHandler
	AuditLogger  *middleware.AuditLogger
}

// Setup configures all API routes. redisClient may be nil; rate limits are then skipped.
func Setup(
	router *gin.Engine,
	h Handlers,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	api := router.Group("/api/v1")

	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)
	writeLimit := middleware.RateLimitPerUser(redisClient, cfg.RateLimit.WriteRequestsPerMinute)

	// Forum
	forum := api.Group("/forum")
	{
		forum.GET("/categories", h.Forum.ListCategories)
		forum.POST("/categories", auth, middleware.RequireAdmin(), h.Forum.CreateCategory)

		forum.GET("/posts", h.Forum.ListPosts)
		forum.POST("/posts", auth, writeLimit, h.Forum.CreatePost)
		forum.GET("/posts/:id", optionalAuth, h.Forum.GetPost)
		forum.PUT("/posts/:id", auth, h.Forum.UpdatePost)
		forum.DELETE("/posts/:id", auth, h.Forum.DeletePost)

		forum.GET("/posts/:id/replies", h.Reply.List)
		forum.POST("/posts/:id/replies", auth, writeLimit, h.Reply.Create)

		// admin check lives in the service so the 403 carries the reply context
		forum.DELETE("/replies/:id", auth, h.Reply.Delete)
		forum.POST("/replies/:id/like", auth, writeLimit, h.Reply.ToggleLike)
	}

	// Activity feeds
	api.GET("/users/:id/activity", optionalAuth, h.Activity.UserFeed)
	api.GET("/me/activity", auth, h.Activity.MyFeed)

	// Events and rankings
	events := api.Group("/events")
	{
		events.GET("", h.Event.List)
		events.GET("/nearby", h.Event.Nearby)
		events.GET("/:id", h.Event.Get)
		events.GET("/:id/teams", h.Ranking.EventTeams)
	}
	api.GET("/rankings", h.Ranking.Global)

	// Articles
	api.GET("/articles", h.Article.List)
	api.GET("/articles/:slug", h.Article.Get)

	// Notifications
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", h.Notification.GetList)
		notifications.GET("/unread-count", h.Notification.GetUnreadCount)
		notifications.POST("/read-all", h.Notification.MarkAllAsRead)
		notifications.POST("/:id/read", h.Notification.MarkAsRead)
	}
	if h.WS != nil {
		api.GET("/ws/notifications", auth, h.WS.Connect)
	}

	// Admin back office
	admin := api.Group("/admin", auth, middleware.RequireAdmin(), middleware.AuditTrail(h.AuditLogger))
	{
		admin.GET("/audit-logs", h.Audit.List)

		admin.POST("/events", h.Event.Create)
		admin.PUT("/events/:id", h.Event.Update)
		admin.DELETE("/events/:id", h.Event.Delete)
		admin.POST("/events/:id/geocode", h.Event.Geocode)
		admin.PUT("/events/:id/teams", h.Ranking.SaveStandings)

		admin.GET("/articles", h.Article.AdminList)
		admin.POST("/articles", h.Article.Create)
		admin.PUT("/articles/:id", h.Article.Update)
		admin.DELETE("/articles/:id", h.Article.Delete)
	}
}
