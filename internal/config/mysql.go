package config

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the shared connection pool.
var DB *gorm.DB

// InitDB opens the MySQL connection pool.
func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.Error(err))
	}

	sqlDB, err := DB.DB()
	if err != nil {
		Logger.Fatal("Error getting raw DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	Logger.Info("Database connected")
}
