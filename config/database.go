package config

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the process-wide connection handle. It is called
// exactly once at startup; the caller terminates the process on failure.
func ConnectDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
