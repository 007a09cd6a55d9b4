package db

import "time"

// SettingsID 是站点设置单例行的固定主键
const SettingsID = "default"

// SiteSetting 站点设置单例
type SiteSetting struct {
	ID string `gorm:"primaryKey" json:"id"`

	SiteName        string `gorm:"not null" json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	SiteURL         string `json:"siteUrl"`
	Logo            string `json:"logo"`
	Favicon         string `json:"favicon"`

	PostsPerPage      int    `gorm:"not null;default:12" json:"postsPerPage"`
	DefaultCategoryID string `json:"defaultCategoryId"`

	UpdatedAt time.Time `json:"updatedAt"`
}
