package main

// @title           Martial World API
// @version         1.0
// @description     REST backend for the martial arts community platform
// @host            localhost:8080
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"martial-service/configs"
	"martial-service/configs/database"
	"martial-service/internal/adapters/storage"
	"martial-service/internal/api/routes"
)

func main() {
	cfg := configs.Load()

	slog.Info("Starting martial world server")

	db, err := database.NewPostgresConnection(
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	if err != nil {
		slog.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := database.NewMongoConnection(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		slog.Error("Failed to connect to MinIO", "error", err)
		os.Exit(1)
	}

	router := routes.NewRouter(db, mongoDB.DB, minioClient, cfg.JWTSecret, cfg.JWTExpire)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if err := mongoDB.Close(ctx); err != nil {
		log.Printf("Warning: failed to disconnect from MongoDB: %v", err)
	}
	if err := database.ClosePostgres(db); err != nil {
		log.Printf("Warning: failed to close PostgreSQL pool: %v", err)
	}

	slog.Info("Server stopped")
}
