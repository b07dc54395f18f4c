package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/taskflowapp/taskflow-backend/internal/api/handlers"
	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/config"
	"github.com/taskflowapp/taskflow-backend/internal/service"
	"github.com/taskflowapp/taskflow-backend/internal/store"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// INIT DB
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatal("failed open database:", err)
	}

	// MIGRATIONS
	if err := store.Migrate(db); err != nil {
		log.Fatal("migration error:", err)
	}

	// SERVICES
	access := service.NewAccessResolver(db)
	personalize := service.NewPersonalizeService(db, access)
	tasks := service.NewTaskService(db, access, personalize, cfg.DefaultPageSize)
	collab := service.NewCollabService(db, access)
	tags := service.NewTagService(db)
	categories := service.NewCategoryService(db)
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTLHours)

	// HANDLERS
	authHandler := handlers.NewAuthHandler(auth)
	taskHandler := handlers.NewTaskHandler(tasks)
	collabHandler := handlers.NewCollabHandler(collab)
	personalizeHandler := handlers.NewPersonalizeHandler(personalize)
	tagHandler := handlers.NewTagHandler(tags)
	categoryHandler := handlers.NewCategoryHandler(categories)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := r.Group("/api/v1")

	// AUTH ROUTES
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.JWTAuth(cfg.JWTSecret), authHandler.Me)
	}

	// EVERYTHING ELSE REQUIRES A VALID TOKEN
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWTSecret))

	taskGroup := authed.Group("/tasks")
	{
		taskGroup.GET("", taskHandler.List)
		taskGroup.POST("", taskHandler.Create)
		taskGroup.GET("/:id", taskHandler.Get)
		taskGroup.PUT("/:id", taskHandler.Update)
		taskGroup.DELETE("/:id", taskHandler.Delete)

		taskGroup.GET("/:id/collab", collabHandler.Members)
		taskGroup.POST("/:id/collab", collabHandler.Invite)
		taskGroup.PUT("/:id/collab", collabHandler.ChangeRole)
		taskGroup.DELETE("/:id/collab", collabHandler.Remove)

		taskGroup.GET("/:id/personalize", personalizeHandler.Get)
		taskGroup.POST("/:id/personalize", personalizeHandler.Set)
	}

	authed.GET("/collab", taskHandler.ListShared)

	tagGroup := authed.Group("/tags")
	{
		tagGroup.GET("", tagHandler.List)
		tagGroup.POST("", tagHandler.Create)
		tagGroup.GET("/:id", tagHandler.Get)
		tagGroup.PUT("/:id", tagHandler.Update)
		tagGroup.DELETE("/:id", tagHandler.Delete)
	}

	categoryGroup := authed.Group("/categories")
	{
		categoryGroup.GET("", categoryHandler.List)
		categoryGroup.POST("", categoryHandler.Create)
		categoryGroup.GET("/:id", categoryHandler.Get)
		categoryGroup.PUT("/:id", categoryHandler.Update)
		categoryGroup.DELETE("/:id", categoryHandler.Delete)
	}

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error:", err)
	}
}
