package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	if err := ensureDatabaseDir(connectionString); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, one connection keeps ":memory:" databases coherent
	sqlDB.SetMaxOpenConns(1)

	return &DbContext{DB: db}, nil
}

// ensureDatabaseDir creates the directory of a file database. In-memory and URI
// connection strings are left alone.
func ensureDatabaseDir(connectionString string) error {
	path, _, _ := strings.Cut(connectionString, "?")
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Company{})
	if err != nil {
		return fmt.Errorf("failed to migrate Company entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.SeniorityLevel{})
	if err != nil {
		return fmt.Errorf("failed to migrate SeniorityLevel entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

// IsConnectionLost reports errors after which no further write can succeed.
func IsConnectionLost(err error) bool {
	return errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrTxDone)
}
