package routes

import (
	"github.com/gin-gonic/gin"

	"taskhub/internal/handlers"
	"taskhub/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	tagHandler *handlers.TagHandler,
	dashboardHandler *handlers.DashboardHandler,
	timerHandler *handlers.TimerHandler,
	landingHandler *handlers.LandingHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", authHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.GET("/dashboard", dashboardHandler.GetDashboard)

		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)

		// status transition actions
		tasks.POST("/:id/start", taskHandler.Start)
		tasks.POST("/:id/complete", taskHandler.Complete)
		tasks.POST("/:id/cancel", taskHandler.Cancel)
		tasks.POST("/:id/reset", taskHandler.Reset)
	}

	// TAGS
	tags := r.Group("/tags")
	{
		tags.POST("/", tagHandler.Create)
		tags.GET("/", tagHandler.GetAll)
		tags.PUT("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	// POMODORO TIMER
	timer := r.Group("/timer")
	{
		timer.GET("/state", timerHandler.GetState)
		timer.POST("/state", timerHandler.SaveState)
		timer.POST("/reset", timerHandler.ResetState)
	}

	// LANDING + post-login redirect override
	r.GET("/landing", landingHandler.LandingPage)
	r.GET("/landing/modules", landingHandler.GetModules)
	r.GET("/web", landingHandler.RedirectToLanding)
	r.GET("/web/redirect", landingHandler.RedirectToLanding)
	r.GET("/web/home", landingHandler.HomeFallback)

	return r
}
