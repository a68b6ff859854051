package database

import (
	"fmt"

	"movie-api/config"
	"movie-api/internal/domain/movies"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the movies table.
func Open(cfg *config.Config, log gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DBURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return open(dialector, log)
}

// OpenMemory opens a private in-memory SQLite database. Used by tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := connect(sqlite.Open("file::memory:"), gormlogger.Discard)
	if err != nil {
		return nil, err
	}

	// every new connection to :memory: is a fresh, empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func open(dialector gorm.Dialector, log gormlogger.Interface) (*gorm.DB, error) {
	db, err := connect(dialector, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func connect(dialector gorm.Dialector, log gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&movies.Movie{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
