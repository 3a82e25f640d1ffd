package db

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是 Init 打开的共享连接
var DB *gorm.DB

// DefaultPath 为未配置数据库路径时使用的默认值
const DefaultPath = "skilllab.db"

// Init 打开 databasePath 处的 sqlite 数据库并迁移表结构
func Init(databasePath string, logger *slog.Logger) error {
	gdb, err := Open(databasePath, logger)
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 打开并迁移数据库，不修改共享连接
func Open(databasePath string, logger *slog.Logger) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = DefaultPath
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: NewLogger(logger)})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&Preference{}); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Close 释放共享连接
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
