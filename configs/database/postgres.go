package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"martial-service/internal/auth"
)

// NewPostgresConnection opens the identity store and migrates its schema.
func NewPostgresConnection(user, password, host, port, dbname string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&auth.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)").Error; err != nil {
		return nil, fmt.Errorf("failed to add indexes: %w", err)
	}

	return db, nil
}

// ClosePostgres closes the underlying connection pool.
func ClosePostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
