package db

import "time"

// Author 定义了作者模型
type Author struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Slug   string `gorm:"uniqueIndex;not null" json:"slug"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
	Title  string `json:"title"`

	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`

	// PostCount caches a COUNT over post_authors; recomputed after every
	// membership change, never incremented.
	PostCount int `gorm:"not null;default:0" json:"postCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
