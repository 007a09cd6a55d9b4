package db

import "time"

// Tag 定义了标签目录，仅用于展示聚合；文章自身的 tags 列才是权威数据
type Tag struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	PostCount int `gorm:"not null;default:0" json:"postCount"`

	CreatedAt time.Time `json:"createdAt"`
}
