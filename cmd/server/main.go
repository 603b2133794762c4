package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unisync/api/internal/config"
	"github.com/unisync/api/internal/database"
	"github.com/unisync/api/internal/handler"
	"github.com/unisync/api/internal/jobs"
	"github.com/unisync/api/internal/middleware"
	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/repository"
	"github.com/unisync/api/internal/service"
	"github.com/unisync/api/internal/storage"
	"github.com/unisync/api/internal/web"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
		OpTimeout: cfg.Database.OpTimeout,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Pin the constraints the code relies on (unique user.email).
	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to bootstrap schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize poster storage
	var posters storage.BlobStore
	var devPosters *storage.MemoryStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			slog.Error("failed to initialize poster storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		posters = s3Store
		slog.Info("poster storage ready", slog.String("bucket", cfg.Storage.Bucket))
	} else {
		devPosters = storage.NewMemoryStore()
		posters = devPosters
		slog.Warn("no poster bucket configured, using in-memory store")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	societyRepo := repository.NewSocietyRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		SocietyRepo: societyRepo,
		SessionRepo: sessionRepo,
		SessionTTL:  cfg.Session.TTL,
	})

	accountService := service.NewAccountService(service.AccountServiceConfig{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		SocietyRepo: societyRepo,
		SessionRepo: sessionRepo,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo:   eventRepo,
		SocietyRepo: societyRepo,
		StudentRepo: studentRepo,
		Posters:     posters,
	})

	// Expired sessions are swept in the background
	sessionReaper := jobs.NewSessionReaper(sessionRepo, cfg.Session.ReapInterval)
	sessionReaper.Start()
	defer sessionReaper.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Session)
	eventHandler := handler.NewEventHandler(eventService)
	studentHandler := handler.NewStudentHandler(eventService)
	adminHandler := handler.NewAdminHandler(accountService)
	posterHandler := handler.NewPosterHandler(posters)
	healthHandler := handler.NewHealthHandler(db)

	pages, err := web.New(authService, eventService, accountService, cfg.Session)
	if err != nil {
		slog.Error("failed to initialize page handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints
	authMW := middleware.Auth(authService, cfg.Session.CookieName)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	studentOnly := middleware.RequireRole(model.RoleStudent)
	societyOnly := middleware.RequireRole(model.RoleSociety)
	societyOrAdmin := middleware.RequireRole(model.RoleSociety, model.RoleAdmin)

	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.Handle("POST /api/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Event browsing (any authenticated role)
	mux.Handle("GET /api/mobile/events", authMW(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /api/mobile/events/search", authMW(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /api/mobile/event/{eventId}", authMW(http.HandlerFunc(eventHandler.Get)))

	// Event management (owning society, admin override)
	mux.Handle("POST /api/mobile/society/add-event", authMW(societyOnly(http.HandlerFunc(eventHandler.Create))))
	mux.Handle("PUT /api/mobile/event/{eventId}", authMW(societyOrAdmin(http.HandlerFunc(eventHandler.Update))))
	mux.Handle("DELETE /api/mobile/event/{eventId}", authMW(societyOrAdmin(http.HandlerFunc(eventHandler.Delete))))
	mux.Handle("GET /api/mobile/event/{eventId}/participants", authMW(societyOrAdmin(http.HandlerFunc(eventHandler.Participants))))
	mux.Handle("GET /api/mobile/society/dashboard", authMW(societyOnly(http.HandlerFunc(eventHandler.SocietyDashboard))))

	// Student participation
	mux.Handle("GET /api/mobile/student/dashboard", authMW(studentOnly(http.HandlerFunc(studentHandler.Dashboard))))
	mux.Handle("GET /api/mobile/student/{studentId}/events", authMW(http.HandlerFunc(studentHandler.MyEvents)))
	mux.Handle("POST /api/mobile/student/join-event/{eventId}", authMW(studentOnly(http.HandlerFunc(studentHandler.Join))))
	mux.Handle("POST /api/mobile/student/leave-event/{eventId}", authMW(studentOnly(http.HandlerFunc(studentHandler.Leave))))

	// Posters resolve to short-lived blob store URLs
	mux.Handle("GET /api/posters/{key...}", authMW(http.HandlerFunc(posterHandler.Redirect)))
	if devPosters != nil {
		mux.HandleFunc("GET /dev/posters/{key...}", handler.DevPosters(devPosters))
	}

	// Admin account management
	mux.Handle("GET /api/admin/students", authMW(adminOnly(http.HandlerFunc(adminHandler.ListStudents))))
	mux.Handle("POST /api/admin/students", authMW(adminOnly(http.HandlerFunc(adminHandler.CreateStudent))))
	mux.Handle("GET /api/admin/students/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.GetStudent))))
	mux.Handle("PUT /api/admin/students/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.UpdateStudent))))
	mux.Handle("DELETE /api/admin/students/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.DeleteStudent))))
	mux.Handle("GET /api/admin/societies", authMW(adminOnly(http.HandlerFunc(adminHandler.ListSocieties))))
	mux.Handle("POST /api/admin/societies", authMW(adminOnly(http.HandlerFunc(adminHandler.CreateSociety))))
	mux.Handle("GET /api/admin/societies/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.GetSociety))))
	mux.Handle("PUT /api/admin/societies/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.UpdateSociety))))
	mux.Handle("DELETE /api/admin/societies/{id}", authMW(adminOnly(http.HandlerFunc(adminHandler.DeleteSociety))))

	// Server-rendered pages: the same mutations as the JSON API, but as
	// form posts with flash-message redirects
	adminPage := web.PageAuth(authService, cfg.Session.CookieName, model.RoleAdmin)
	societyPage := web.PageAuth(authService, cfg.Session.CookieName, model.RoleSociety)
	studentPage := web.PageAuth(authService, cfg.Session.CookieName, model.RoleStudent)
	societyOrAdminPage := web.PageAuth(authService, cfg.Session.CookieName, model.RoleSociety, model.RoleAdmin)

	mux.HandleFunc("GET /{$}", pages.LoginPage)
	mux.HandleFunc("POST /login", pages.Login)
	mux.HandleFunc("GET /logout", pages.Logout)
	mux.Handle("GET /AdminDashboard", adminPage(http.HandlerFunc(pages.AdminDashboard)))
	mux.Handle("GET /SocietyDashboard", societyPage(http.HandlerFunc(pages.SocietyDashboard)))
	mux.Handle("GET /StudentDashboard", studentPage(http.HandlerFunc(pages.StudentDashboard)))

	mux.Handle("POST /student/join-event/{eventId}", studentPage(http.HandlerFunc(pages.JoinEvent)))
	mux.Handle("POST /student/leave-event/{eventId}", studentPage(http.HandlerFunc(pages.LeaveEvent)))
	mux.Handle("POST /society/add-event", societyPage(http.HandlerFunc(pages.CreateEvent)))
	mux.Handle("POST /society/event/{eventId}/update", societyOrAdminPage(http.HandlerFunc(pages.UpdateEvent)))
	mux.Handle("POST /society/event/{eventId}/delete", societyOrAdminPage(http.HandlerFunc(pages.DeleteEvent)))
	mux.Handle("POST /admin/add-student", adminPage(http.HandlerFunc(pages.CreateStudent)))
	mux.Handle("POST /admin/student/{id}/delete", adminPage(http.HandlerFunc(pages.DeleteStudent)))
	mux.Handle("POST /admin/add-society", adminPage(http.HandlerFunc(pages.CreateSociety)))
	mux.Handle("POST /admin/society/{id}/delete", adminPage(http.HandlerFunc(pages.DeleteSociety)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
