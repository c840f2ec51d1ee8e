package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"citizendesk/backend/internal/api/handler"
	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/complaint"
	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/feed"
	"citizendesk/backend/internal/localization"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/news"
	"citizendesk/backend/internal/notify"
	"citizendesk/backend/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError turns Postgres unique violations into
	// gorm.ErrDuplicatedKey, which the ticket generator retries on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintReply{},
		&models.ComplaintAccess{},
		&models.ComplaintStatusUpdate{},
		&models.NewsArticle{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CitizenDesk Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	localizer, err := localization.NewLocalizer(cfg.LocalesDir)
	if err != nil {
		log.Fatalf("Failed to load message catalogues: %v", err)
	}

	// 2. Services
	complaintSvc := complaint.NewService(s)
	newsSvc := news.NewService(s)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramStaffChatID)
	if err != nil {
		log.Fatalf("Failed to start Telegram notifier: %v", err)
	}
	if notifier != nil {
		complaintSvc.Notifier = notifier
	} else {
		log.Println("Telegram notifier disabled (no token configured)")
	}

	// 3. Activity feed hub
	hub := feed.NewHub(s)
	go hub.Run()

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(complaintSvc, newsSvc, s, tokens, hub, localizer)
	limiter := handler.NewRateLimiter()

	public := r.Group("/api", limiter.Middleware(h))
	{
		public.POST("/complaints", h.SubmitComplaint)
		public.POST("/complaints/status", h.LookupStatus)
		public.GET("/news", h.PublicNews)
		public.GET("/news/:id", h.PublicArticle)
	}

	r.POST("/admin/login", limiter.Middleware(h), h.Login)

	admin := r.Group("/admin", h.AuthRequired())
	{
		admin.GET("/complaints", handler.RequireAction(auth.ActionViewComplaints), h.ListComplaints)
		admin.GET("/complaints/:id", handler.RequireAction(auth.ActionViewComplaints), h.GetComplaint)
		admin.POST("/complaints/:id/assign", handler.RequireAction(auth.ActionAssignComplaint), h.AssignComplaint)
		admin.POST("/complaints/:id/replies", handler.RequireAction(auth.ActionReplyComplaint), h.AddReply)
		admin.POST("/complaints/:id/status", handler.RequireAction(auth.ActionChangeStatus), h.ChangeStatus)
		admin.POST("/complaints/:id/priority", handler.RequireAction(auth.ActionChangePriority), h.ChangePriority)

		admin.GET("/news", handler.RequireAction(auth.ActionViewNews), h.ListArticles)
		admin.POST("/news", handler.RequireAction(auth.ActionManageNews), h.CreateArticle)
		admin.PUT("/news/:id", handler.RequireAction(auth.ActionManageNews), h.UpdateArticle)
		admin.POST("/news/:id/status", handler.RequireAction(auth.ActionManageNews), h.SetArticleStatus)
		admin.DELETE("/news/:id", handler.RequireAction(auth.ActionManageNews), h.DeleteArticle)

		admin.GET("/activity", handler.RequireAction(auth.ActionViewActivity), h.ListActivity)
		admin.GET("/dashboard", handler.RequireAction(auth.ActionViewDashboard), h.Dashboard)
		admin.GET("/search", handler.RequireAction(auth.ActionSearch), h.Search)
		admin.GET("/ws", handler.RequireAction(auth.ActionSubscribeToFeeds), h.ServeFeed)
	}

	// 5. HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
