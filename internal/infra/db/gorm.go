package db

import (
	"fmt"
	"os"

	"app/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect() (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	host := config.Getenv("POSTGRES_HOST", "localhost")
	port := config.Getenv("POSTGRES_PORT", "5432")
	user := config.Getenv("POSTGRES_USER", "postgres")
	pass := config.Getenv("POSTGRES_PASSWORD", "postgres")
	name := config.Getenv("POSTGRES_DB", "invoicing")
	ssl := config.Getenv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
