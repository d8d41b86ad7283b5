package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	// Connect to MySQL database
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = db.AutoMigrate(
		&MedicalHistory{},
		&MedicalRecordFile{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
