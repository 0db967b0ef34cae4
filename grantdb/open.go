package grantdb

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres using DATABASE_DSN (URL or key=value form,
// normalized via NormalizeDSN) and migrates the grants table. A .env
// file in the working directory is loaded first, if present. The
// connection is retried a few times so the store survives a database
// that is still starting up.
func Open() (*gorm.DB, error) {
	_ = godotenv.Load()
	dsn := NormalizeDSN(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty")
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig())
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect grant database: %w", err)
	}
	return migrate(db)
}

// OpenSQLite opens a sqlite-backed grant database at path and migrates
// the grants table. Pass ":memory:" for an ephemeral database in tests
// and development.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite grant database: %w", err)
	}
	return migrate(db)
}

func migrate(db *gorm.DB) (*gorm.DB, error) {
	if err := db.AutoMigrate(&Grant{}); err != nil {
		return nil, fmt.Errorf("migrate grants table: %w", err)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
}
