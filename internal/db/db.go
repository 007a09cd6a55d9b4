package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init opens the single-file sqlite store with WAL enabled and runs auto
// migration. databasePath 为空时将回退到默认值 inkpress.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "inkpress.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	// WAL keeps reads concurrent with the single writer.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// 自动迁移模式，为核心模型创建表
	if err = DB.AutoMigrate(
		&Post{},
		&PostAuthor{},
		&Author{},
		&Category{},
		&Tag{},
		&AdminUser{},
		&SiteSetting{},
	); err != nil {
		return err
	}

	return ensureDefaultCategory()
}

// ensureDefaultCategory seeds the fallback category posts land in when the
// admin UI submits none.
func ensureDefaultCategory() error {
	var existing Category
	err := DB.Where("id = ?", DefaultCategoryID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return DB.Create(&Category{
		ID:   DefaultCategoryID,
		Slug: DefaultCategoryID,
		Name: "General",
	}).Error
}

func ensureParentDir(path string) error {
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
