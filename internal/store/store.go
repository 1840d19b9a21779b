// Package store keeps the history of BER measurement runs in SQLite.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Use modernc.org/sqlite (pure Go, no CGO)
	"gorm.io/driver/sqlite"
	_ "modernc.org/sqlite"
)

// DefaultPath is used when Open is given an empty path.
const DefaultPath = "viterbiber.db"

// DB wraps the GORM database connection.
type DB struct {
	db     *gorm.DB
	logger *log.Logger
}

// Open opens or creates the database at path and migrates its schema.
// A nil logger means log.Default().
func Open(path string, logger *log.Logger) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}

	if logger == nil {
		logger = log.Default()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create database directory: %w", err)
		}
	}

	gormLog := gormlogger.New(
		&gormLogAdapter{log: logger},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dialector := sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: get database instance: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if err := db.AutoMigrate(&Run{}, &Measurement{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: run migrations: %w", err)
	}

	logger.Debug("database initialized", "path", path)

	return &DB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Runs returns a repository over the runs table.
func (d *DB) Runs() *RunRepository {
	return NewRunRepository(d.db)
}

// gormLogAdapter routes GORM's log output to the CLI logger.
type gormLogAdapter struct {
	log *log.Logger
}

func (l *gormLogAdapter) Printf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}
