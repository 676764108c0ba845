package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mobilecare/internal/httpserver/handler"
	"mobilecare/internal/session"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	notificationHandler *handler.NotificationHandler,
	store session.Store,
) *Router {
	r := gin.Default()

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Open: sign-in and sign-out carry no gate, same as the original
	// route table.
	r.POST("/signin", authHandler.Signin)
	r.POST("/signout", authHandler.Signout)

	// Visitor-only
	public := r.Group("/")
	public.Use(PublicOnly(store))
	{
		public.GET("/", authHandler.Splash)
	}

	// Protected
	auth := r.Group("/")
	auth.Use(Protected(store))
	{
		auth.GET("/dashboard", dashboardHandler.Stats)
		auth.GET("/notifications", notificationHandler.List)
		auth.POST("/notifications/:id/select", notificationHandler.ToggleSelect)
		auth.POST("/notifications/:id/read", notificationHandler.MarkRead)
		auth.DELETE("/notifications/:id", notificationHandler.DeleteOne)
		auth.POST("/notifications/delete-selected", notificationHandler.DeleteSelected)
		auth.DELETE("/notifications", notificationHandler.DeleteAll)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
