package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/cache"
	"github.com/yatube/internal/db"
	"github.com/yatube/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	groups    *service.GroupService
	comments  *service.CommentService
	follows   *service.FollowService
	users     *service.UserService
	pageCache *cache.PageCache
	pageSize  int
	uploadDir string
	uploadURL string
}

// Options 控制列表页大小、首页缓存与上传目录。
type Options struct {
	PageSize      int
	PageCache     *cache.PageCache
	UploadDir     string
	UploadURLPath string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.PageCache == nil {
		// TTL 为 0 的缓存不会存储任何页面
		opts.PageCache = cache.NewPageCache(0)
	}

	return &API{
		db:        gdb,
		posts:     service.NewPostService(gdb),
		groups:    service.NewGroupService(gdb),
		comments:  service.NewCommentService(gdb),
		follows:   service.NewFollowService(gdb),
		users:     service.NewUserService(gdb),
		pageCache: opts.PageCache,
		pageSize:  opts.PageSize,
		uploadDir: opts.UploadDir,
		uploadURL: opts.UploadURLPath,
	}
}

// PageCache 暴露首页缓存，供路由挂载中间件、测试做显式清理。
func (a *API) PageCache() *cache.PageCache {
	return a.pageCache
}

// currentUser 从会话解析当前登录用户，未登录时返回 nil。
// 会话里只存 user_id，用户记录每次都重新读取，避免改名后读到旧数据。
func (a *API) currentUser(c *gin.Context) *db.User {
	session := sessions.Default(c)
	raw := session.Get("user_id")
	if raw == nil {
		return nil
	}

	userID, ok := raw.(uint)
	if !ok {
		return nil
	}

	var user db.User
	if err := a.db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}
