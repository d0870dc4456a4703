package database

import (
	"fmt"
	"time"

	"github.com/angple/arena-backend/internal/config"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to MySQL with the pool settings of cfg.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string, cfg config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	mysqlCfg.ParseTime = true
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["charset"] = "utf8mb4"

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}

// OpenStores opens the primary store and, when configured, the separate event store.
// Without an event DSN both handles are the same.
func OpenStores(cfg *config.Config, logLevel gormlogger.LogLevel) (primary, events *gorm.DB, err error) {
	primary, err = Open(cfg.Database.GetDSN(), cfg.Database, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("primary database: %w", err)
	}
	if cfg.EventDatabase.DSN == "" {
		return primary, primary, nil
	}
	events, err = Open(cfg.EventDatabase.DSN, cfg.Database, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("event database: %w", err)
	}
	return primary, events, nil
}

// Close closes both handles, once when they are the same
func Close(primary, events *gorm.DB) {
	closeOne := func(db *gorm.DB) {
		if db == nil {
			return
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	closeOne(primary)
	if events != primary {
		closeOne(events)
	}
}
