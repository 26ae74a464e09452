package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pasteleria/admin-backend/internal/config"
	"github.com/pasteleria/admin-backend/internal/handlers"
	"github.com/pasteleria/admin-backend/internal/middleware"
	"github.com/pasteleria/admin-backend/internal/repository"
	"github.com/pasteleria/admin-backend/internal/service"
	"github.com/pasteleria/admin-backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting bakery admin api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories
	materialRepo := repository.NewInMemoryMaterialRepository()
	cakeRepo := repository.NewInMemoryCakeRepository()
	trayRepo := repository.NewInMemoryTrayRepository()

	// Initialize services
	cakeService := service.NewCakeService(cakeRepo, materialRepo,
		time.Duration(cfg.Costing.SummaryCacheTTL)*time.Second)
	materialService := service.NewMaterialService(materialRepo, cakeService)
	trayService := service.NewTrayService(trayRepo, cakeService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	materialHandler := handlers.NewMaterialHandler(materialService, log)
	cakeHandler := handlers.NewCakeHandler(cakeService, log)
	trayHandler := handlers.NewTrayHandler(trayService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Read-only endpoints
		r.Get("/material", materialHandler.ListMaterials)
		r.Get("/material/{materialId}", materialHandler.GetMaterial)
		r.Get("/cake", cakeHandler.ListCakes)
		r.Get("/cake/{cakeId}", cakeHandler.GetCake)
		r.Get("/cake/{cakeId}/cost", cakeHandler.GetCakeCost)
		r.Get("/tray", trayHandler.ListTrays)
		r.Get("/tray/{trayId}", trayHandler.GetTray)
		r.Get("/tray/session/{sessionId}", trayHandler.GetSession)

		// Mutating endpoints require an API key
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			r.Post("/material", materialHandler.CreateMaterial)
			r.Put("/material/{materialId}", materialHandler.UpdateMaterial)
			r.Delete("/material/{materialId}", materialHandler.DeleteMaterial)

			r.Post("/cake", cakeHandler.CreateCake)
			r.Put("/cake/{cakeId}", cakeHandler.UpdateCake)
			r.Put("/cake/{cakeId}/recipe", cakeHandler.SetRecipe)
			r.Delete("/cake/{cakeId}", cakeHandler.DeleteCake)

			r.Delete("/tray/{trayId}", trayHandler.DeleteTray)

			// Tray-builder sessions
			r.Post("/tray/session", trayHandler.StartSession)
			r.Put("/tray/session/{sessionId}/line", trayHandler.UpsertLine)
			r.Post("/tray/session/{sessionId}/line/{cakeId}/edit", trayHandler.BeginEditLine)
			r.Delete("/tray/session/{sessionId}/line/{cakeId}", trayHandler.RemoveLine)
			r.Post("/tray/session/{sessionId}/reset", trayHandler.ResetSession)
			r.Post("/tray/session/{sessionId}/confirm", trayHandler.ConfirmSession)
			r.Delete("/tray/session/{sessionId}", trayHandler.AbandonSession)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
