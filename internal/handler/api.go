package handler

import (
	"github.com/inkpress/internal/cache"
	"github.com/inkpress/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	authors    *service.AuthorService
	categories *service.CategoryService
	tags       *service.TagService
	settings   *service.SettingService
	pages      *cache.PageCache
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, pages *cache.PageCache, uploadDir, uploadURL string) *API {
	return &API{
		db:         gdb,
		posts:      service.NewPostService(gdb),
		authors:    service.NewAuthorService(gdb),
		categories: service.NewCategoryService(gdb),
		tags:       service.NewTagService(gdb),
		settings:   service.NewSettingService(gdb),
		pages:      pages,
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Posts exposes the post service for bootstrap tasks such as warmup.
func (a *API) Posts() *service.PostService {
	return a.posts
}

func (a *API) siteName() string {
	settings, err := a.settings.Get()
	if err != nil || settings == nil {
		return "Inkpress"
	}
	return settings.SiteName
}
