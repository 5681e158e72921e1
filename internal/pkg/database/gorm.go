package database

import (
	"Agora/internal/api/config"
	"Agora/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 连接池缺省值，配置未填或填 0 时生效
const (
	defaultMaxIdle     = 10
	defaultMaxOpen     = 100
	defaultMaxLifetime = 60 // 分钟
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dialector := mysql.Open(cfg.DSN)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	maxIdle, maxOpen, maxLifetime := cfg.MaxIdle, cfg.MaxOpen, cfg.MaxLifetime
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}
	if maxLifetime <= 0 {
		maxLifetime = defaultMaxLifetime
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established successfully.")
	return db, nil
}
