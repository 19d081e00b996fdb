package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/beacon-dev/beacon/db"
	"github.com/beacon-dev/beacon/internal/auth"
	"github.com/beacon-dev/beacon/internal/logger"
	"github.com/beacon-dev/beacon/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	zapLogger, err := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("GIN_MODE") != "release")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := auth.InitJWTSecret(); err != nil {
		zapLogger.Fatal("JWT setup failed", zap.Error(err))
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		zapLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	r := router.NewRouter(db.DB, zapLogger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		zapLogger.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
