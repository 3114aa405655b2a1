package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/market-notifier/internal/api/handlers/admin"
	"github.com/aliskhannn/market-notifier/internal/api/handlers/health"
	"github.com/aliskhannn/market-notifier/internal/api/handlers/intake"
	"github.com/aliskhannn/market-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/market-notifier/internal/middlewares"
)

// Handlers groups the HTTP handlers the router serves.
type Handlers struct {
	Notification *notification.Handler
	Admin        *admin.Handler
	Intake       *intake.Handler
	Health       *health.Handler
}

func New(h Handlers) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/health", h.Health.Check)

	api := e.Group("/api")

	notifications := api.Group("/notifications", middlewares.RequireUser())
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.GET("/stream", h.Notification.Stream)
		notifications.PATCH("/read-all", h.Notification.MarkAllRead)
		notifications.PATCH("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
		notifications.DELETE("", h.Notification.DeleteAll)
	}

	adm := api.Group("/admin")
	{
		adm.GET("/queues", h.Admin.QueueStatus)
		adm.POST("/queues/retry-failed", h.Admin.RetryFailed)
		adm.GET("/deliveries/stats", h.Admin.DeliveryStats)
		adm.GET("/deliveries/retry-candidates", h.Admin.RetryCandidates)
		adm.GET("/notifications/:id/deliveries", h.Admin.NotificationDeliveries)
	}

	api.POST("/internal/content-events", h.Intake.ContentEvent)

	return e
}
