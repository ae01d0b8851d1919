package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/service"
)

// ShowLogin 渲染登录页面
func (a *API) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "登录",
		"next":  c.Query("next"),
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := a.users.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"title":    "登录",
				"error":    "用户名或密码错误",
				"username": username,
				"next":     c.PostForm("next"),
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "登录",
			"error": "登录失败，请稍后重试",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "登录",
			"error": "会话保存失败",
		})
		return
	}

	next := strings.TrimSpace(c.PostForm("next"))
	// 只接受站内路径，拒绝跳转到外部地址
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// ShowSignup 渲染注册页面
func (a *API) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"title": "注册",
	})
}

// Signup 处理用户注册请求，成功后跳转到登录页
func (a *API) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if _, err := a.users.Register(username, password); err != nil {
		message := "注册失败，请稍后重试"
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUsernameTaken) {
			message = "用户名已被占用"
			status = http.StatusConflict
		} else if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
			message = "用户名和密码不能为空"
			status = http.StatusBadRequest
		}
		c.HTML(status, "signup.html", gin.H{
			"title":    "注册",
			"error":    message,
			"username": username,
		})
		return
	}

	c.Redirect(http.StatusFound, "/auth/login/")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// AuthRequired 是一个简单的认证中间件。
// 未登录的请求重定向到登录页，并通过 next 参数携带原始路径。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, fmt.Sprintf("/auth/login/?next=%s", c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}
