package db

import "time"

// Category 定义了分类模型，每篇文章只属于一个分类
type Category struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	ParentID    string `json:"parentId"`

	PostCount int `gorm:"not null;default:0" json:"postCount"`
	SortOrder int `gorm:"index;not null;default:0" json:"sortOrder"`

	CreatedAt time.Time `json:"createdAt"`
}
