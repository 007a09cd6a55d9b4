package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 文章状态
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
	StatusArchived  = "archived"
)

// DefaultCategoryID 是未指定分类时的兜底分类
const DefaultCategoryID = "general"

// Post 定义了文章模型
type Post struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Title   string `gorm:"not null" json:"title"`
	Excerpt string `gorm:"not null" json:"excerpt"`
	Content string `gorm:"not null" json:"content"`

	// Author carries the primary author's display name for legacy callers;
	// the post_authors join is the source of truth.
	Author   string `gorm:"not null" json:"author"`
	AuthorID string `json:"authorId"`

	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`

	FeaturedImage    string `json:"featuredImage"`
	FeaturedImageAlt string `json:"featuredImageAlt"`

	CategoryID string         `gorm:"index;not null" json:"categoryId"`
	Tags       datatypes.JSON `gorm:"not null;default:'[]'" json:"tags"`

	Status string `gorm:"index;not null" json:"status"`

	PublishedAt  *time.Time `gorm:"index" json:"publishedAt"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Views         int `gorm:"not null;default:0" json:"views"`
	Likes         int `gorm:"not null;default:0" json:"likes"`
	CommentsCount int `gorm:"not null;default:0" json:"commentsCount"`

	ReadingTime   int  `json:"readingTime"`
	Featured      bool `gorm:"index;not null;default:false" json:"featured"`
	Sticky        bool `gorm:"not null;default:false" json:"sticky"`
	AllowComments bool `gorm:"not null;default:true" json:"allowComments"`
}

// TagIDs decodes the serialized tag array. A post's own tags column is the
// authoritative list for that post.
func (p *Post) TagIDs() []string {
	if len(p.Tags) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(p.Tags, &ids); err != nil {
		return nil
	}
	return ids
}

// HasTag reports membership by exact string id match.
func (p *Post) HasTag(tagID string) bool {
	for _, id := range p.TagIDs() {
		if id == tagID {
			return true
		}
	}
	return false
}

// PostAuthor 定义了文章与作者的多对多关联，SortOrder 0 为主作者
type PostAuthor struct {
	PostID    string `gorm:"primaryKey" json:"postId"`
	AuthorID  string `gorm:"primaryKey;index" json:"authorId"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
}
