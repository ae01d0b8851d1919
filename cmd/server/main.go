package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/cache"
	"github.com/yatube/internal/config"
	"github.com/yatube/internal/db"
	"github.com/yatube/internal/handler"
	"github.com/yatube/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB, handler.Options{
		PageSize:      cfg.PageSize,
		PageCache:     cache.NewPageCache(cfg.IndexCacheTTL),
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
