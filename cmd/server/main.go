package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/cache"
	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := db.EnsureAdmin(cfg.AdminUserName, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	pages, err := cache.NewPageCache(cfg.RevalidateInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build page cache")
	}

	api := handler.NewAPI(db.DB, pages, cfg.UploadDir, cfg.UploadURLPath)
	engine := router.Setup(router.Options{
		API:           api,
		Pages:         pages,
		SessionSecret: cfg.SessionSecret,
		StaticDir:     "./web/static",
		TemplateGlob:  "web/template/**/*.html",
	})

	// 预热已知页面，相当于构建期的静态生成
	slugs, err := api.Posts().ListSlugs()
	if err != nil {
		log.Warn().Err(err).Msg("failed to enumerate slugs for warmup")
	} else {
		handler.WarmPublicPages(engine, slugs)
		pages.Wait()
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := engine.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
