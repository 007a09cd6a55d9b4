package router

import (
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/cache"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/view"
)

// Options 汇总路由装配所需的依赖
type Options struct {
	API           *handler.API
	Pages         *cache.PageCache
	SessionSecret string
	SessionName   string
	StaticDir     string
	TemplateGlob  string
}

// Setup 配置 Gin 引擎和路由
func Setup(opts Options) *gin.Engine {
	r := gin.Default()

	sessionName := opts.SessionName
	if sessionName == "" {
		sessionName = "inkpress_session"
	}
	store := cookie.NewStore([]byte(opts.SessionSecret))
	r.Use(sessions.Sessions(sessionName, store))

	r.SetFuncMap(template.FuncMap{
		"readingTime": view.FormatReadingTime,
		"formatDate":  view.FormatDate,
		"isoDate":     view.FormatDateISO,
	})
	if opts.TemplateGlob != "" {
		r.LoadHTMLGlob(opts.TemplateGlob)
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := opts.API

	// 公开页面走按窗口再生的页面缓存；搜索接口除外
	public := r.Group("")
	public.Use(handler.CachePage(opts.Pages))
	{
		public.GET("/", api.ShowHome)
		public.GET("/blog", api.ShowBlogList)
		public.GET("/blog/:slug", api.ShowPostDetail)
		public.GET("/categories", api.ShowCategories)
		public.GET("/category/:slug", api.ShowCategory)
		public.GET("/authors", api.ShowAuthors)
		public.GET("/authors/:slug", api.ShowAuthorDetail)
		public.GET("/tags/:slug", api.ShowTagArchive)
	}

	r.GET("/search", api.SearchPosts)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/posts", api.ShowPostList)
			auth.GET("/posts/new", api.ShowPostEdit)
			auth.GET("/posts/:id/edit", api.ShowPostEdit)

			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/posts", api.GetPosts)
				adminAPI.POST("/posts", api.CreatePost)
				adminAPI.GET("/posts/:id", api.GetPost)
				adminAPI.PUT("/posts/:id", api.UpdatePost)
				adminAPI.DELETE("/posts/:id", api.DeletePost)

				adminAPI.GET("/authors", api.GetAuthors)
				adminAPI.POST("/authors", api.CreateAuthor)

				adminAPI.POST("/upload", api.UploadImage)
			}
		}
	}

	return r
}
