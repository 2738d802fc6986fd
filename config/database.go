package config

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the configured database.
func OpenDB(conf Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(conf.Database.Driver) {
	case "postgres":
		dialector = postgres.Open(conf.Database.DSN)
	default:
		dialector = sqlite.Open(conf.Database.DSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", conf.Database.Driver, err)
	}
	return db, nil
}
