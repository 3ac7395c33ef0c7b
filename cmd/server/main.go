package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pickemleague/internal/config"
	"pickemleague/internal/espn"
	"pickemleague/internal/handlers"
	"pickemleague/internal/security"
	"pickemleague/internal/service"
	"pickemleague/internal/session"
	"pickemleague/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	// Initialize the flat-file record store
	recordStore, err := store.New(cfg.DataPath, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize record store: %v", err)
	}

	logger.Infof("Record store ready at %s", cfg.DataPath)

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}

	logger.Info("Templates loaded successfully")

	// Results source
	espnClient := espn.NewClient(espn.Config{
		BaseURL: cfg.ESPNBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
	})

	// Initialize services
	sessions := session.NewStore(cfg.SessionDuration)
	authService := service.NewAuthService(recordStore, sessions, logger)
	pickService := service.NewPickService(recordStore, espnClient, logger)
	scoreService := service.NewScoreService(recordStore, espnClient, logger)

	// Initialize handlers
	limiter := security.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	middleware := handlers.NewMiddleware(authService, limiter, csrf, logger)
	authHandler := handlers.NewAuthHandler(authService, espnClient, templates, logger)
	pickHandler := handlers.NewPickHandler(pickService, csrf, templates, logger)
	scoreboardHandler := handlers.NewScoreboardHandler(scoreService, templates, logger)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /{$}", authHandler.Home)
	mux.HandleFunc("POST /check-user", authHandler.CheckUser)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /logout", authHandler.Logout)

	// Protected league routes
	mux.HandleFunc("GET /week/{week}", middleware.RequireAuth(pickHandler.ShowWeek))
	mux.HandleFunc("POST /week/{week}", middleware.RequireAuth(middleware.CSRFProtect(pickHandler.SubmitWeek)))
	mux.HandleFunc("GET /scoreboard", middleware.RequireAuth(scoreboardHandler.ShowScoreboard))

	// Wrap with logging middleware
	handler := handlers.Logging(logger, mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService, logger)

	go func() {
		logger.Infof("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "picks/*.tmpl"),
	}

	files := []string{filepath.Join(templatesPath, "base.tmpl")}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"formatKickoff": func(t time.Time) string {
			if t.IsZero() {
				return "TBD"
			}
			return t.Format("Mon Jan 2, 3:04 PM MST")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService, logger *zap.SugaredLogger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := authService.CleanupExpiredSessions(); removed > 0 {
			logger.Infof("Cleaned up %d expired sessions", removed)
		}
	}
}
