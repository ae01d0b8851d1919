package router

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/config"
	"github.com/yatube/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	return SetupRouterWithTemplates(cfg, api, "web/template/*.html")
}

// SetupRouterWithTemplates 允许调用方指定模板位置，测试从仓库根目录加载时使用
func SetupRouterWithTemplates(cfg config.AppConfig, api *handler.API, templateGlob string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	// 服务默认以明文 HTTP 运行，不能沿用库的 Secure 默认值，否则会话 Cookie 不会被回传
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("yatube_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	})
	r.LoadHTMLGlob(templateGlob)

	// 静态文件服务（含上传的图片）
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	// 首页参与整页缓存，写操作不会使其失效
	r.GET("/", api.PageCache().Middleware(), api.ShowIndex)

	r.GET("/group/:slug/", api.ShowGroup)
	r.GET("/posts/:id/", api.ShowPostDetail)
	r.GET("/profile/:username/", api.ShowProfile)

	auth := r.Group("/auth")
	{
		auth.GET("/login/", api.ShowLogin)
		auth.POST("/login/", api.Login)
		auth.GET("/signup/", api.ShowSignup)
		auth.POST("/signup/", api.Signup)
		auth.GET("/logout/", api.Logout)
	}

	// 需要登录的路由
	authorized := r.Group("")
	authorized.Use(api.AuthRequired())
	{
		authorized.GET("/create/", api.ShowPostCreate)
		authorized.POST("/create/", api.CreatePost)
		authorized.GET("/posts/:id/edit/", api.ShowPostEdit)
		authorized.POST("/posts/:id/edit/", api.UpdatePost)
		authorized.POST("/posts/:id/comment/", api.AddComment)
		authorized.GET("/follow/", api.ShowFollowFeed)
		authorized.GET("/profile/:username/follow/", api.FollowAuthor)
		authorized.GET("/profile/:username/unfollow/", api.UnfollowAuthor)
	}

	r.NoRoute(api.NotFound)

	return r
}
