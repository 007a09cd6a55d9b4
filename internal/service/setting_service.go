package service

import (
	"errors"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

// SettingService 读取站点设置单例，缺失时落回默认值
type SettingService struct {
	db *gorm.DB
}

// NewSettingService creates a SettingService instance.
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

// Get returns the settings singleton, creating it with defaults on first
// access.
func (s *SettingService) Get() (*db.SiteSetting, error) {
	var settings db.SiteSetting
	err := s.db.Where("id = ?", db.SettingsID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = db.SiteSetting{
		ID:                db.SettingsID,
		SiteName:          "Inkpress",
		PostsPerPage:      12,
		DefaultCategoryID: db.DefaultCategoryID,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
