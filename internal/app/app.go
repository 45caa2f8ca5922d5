package app

import (
	"database/sql"
	"fmt"
	"log"

	"taskhub/internal/config"
	"taskhub/internal/handlers"
	"taskhub/internal/middleware"
	"taskhub/internal/repositories"
	"taskhub/internal/routes"
	"taskhub/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskhub/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	timerRepo := repositories.NewTimerStateRepository(db)
	moduleRepo := repositories.NewModuleRepository(db)

	// === Services ===
	var emailService services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	userService := services.NewUserService(userRepo, emailService)
	taskService := services.NewTaskService(taskRepo, tagRepo, userRepo)
	tagService := services.NewTagService(tagRepo)
	dashboardService := services.NewDashboardService(taskRepo)
	timerService := services.NewTimerService(timerRepo)
	landingService := services.NewLandingService(moduleRepo)

	notifier := services.NewTaskNotifier(cfg.Telegram.BotToken, userRepo, emailService)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, notifier)
	tagHandler := handlers.NewTagHandler(tagService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	timerHandler := handlers.NewTimerHandler(timerService)
	landingHandler, err := handlers.NewLandingHandler(landingService, userService, cfg.Templates.Glob)
	if err != nil {
		log.Fatal("failed to parse templates: ", err)
	}

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		taskHandler,
		tagHandler,
		dashboardHandler,
		timerHandler,
		landingHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
