package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/fanbaselab/fanbase/internal/bootstrap"
	"github.com/fanbaselab/fanbase/internal/config"
	"github.com/fanbaselab/fanbase/internal/handler"
	"github.com/fanbaselab/fanbase/internal/middleware"
	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/database"
	"github.com/fanbaselab/fanbase/pkg/localstore"
	"github.com/fanbaselab/fanbase/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store, err := localstore.NewGormStore(db)
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliMasterKey != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("MEILI_MASTER_KEY not set, search disabled")
	}

	var imageStorage storage.ImageStorage
	if s, err := storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder); err != nil {
		log.Printf("avatar uploads disabled: %v", err)
	} else {
		imageStorage = s
	}

	userRepo := repository.NewUserRepository(store)
	postRepo := repository.NewPostRepository(store)
	pollRepo := repository.NewPollRepository(store)

	ctx := context.Background()
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoUser(ctx, userRepo); err != nil {
			log.Fatalf("failed to seed demo user: %v", err)
		}
	}

	searchService := service.NewSearchService(meiliClient)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	feedService := service.NewFeedService(postRepo, userRepo, searchService, rdb, cfg.RateLimitPost)
	commentService := service.NewCommentService(postRepo, userRepo)
	pollService := service.NewPollService(pollRepo, userRepo, searchService)
	profileService := service.NewProfileService(userRepo, imageStorage)
	statService := service.NewStatService(userRepo, postRepo, pollRepo)

	chatHub := service.NewChatHub(store)
	go chatHub.Run(ctx)

	authHandler := handler.NewAuthHandler(authService)
	feedHandler := handler.NewFeedHandler(feedService, commentService)
	pollHandler := handler.NewPollHandler(pollService)
	profileHandler := handler.NewProfileHandler(profileService)
	statHandler := handler.NewStatHandler(statService, searchService)
	chatHandler := handler.NewChatHandler(chatHub, userRepo)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)

		api.GET("/teams", profileHandler.ListTeams)
		api.GET("/badges", profileHandler.ListBadges)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/posts", feedHandler.ListPosts)
		api.POST("/posts", feedHandler.CreatePost)
		api.GET("/posts/:id", feedHandler.GetPost)
		api.DELETE("/posts/:id", feedHandler.DeletePost)
		api.POST("/posts/:id/like", feedHandler.ToggleLike)
		api.POST("/posts/:id/comments", feedHandler.AddComment)
		api.DELETE("/posts/:id/comments/:comment_id", feedHandler.DeleteComment)

		api.GET("/polls", pollHandler.ListPolls)
		api.POST("/polls", pollHandler.CreatePoll)
		api.GET("/polls/:id", pollHandler.GetPoll)
		api.POST("/polls/:id/vote", pollHandler.Vote)

		profile := api.Group("/profile")
		{
			profile.GET("/me", profileHandler.GetCurrentProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.PUT("/badges", profileHandler.SetBadgeLayout)
		}
		api.GET("/users/:username", profileHandler.GetProfileByUsername)

		api.GET("/leaderboard", statHandler.Leaderboard)
		api.GET("/stats", statHandler.Totals)
		api.GET("/search", statHandler.Search)

		api.GET("/chat/history", chatHandler.History)
		api.GET("/chat/ws", chatHandler.Serve)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
