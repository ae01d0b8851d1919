package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/service"
)

// ShowFollowFeed 渲染关注流：当前用户关注的作者发布的文章
func (a *API) ShowFollowFeed(c *gin.Context) {
	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/auth/login/?next=%s", c.Request.URL.Path))
		return
	}

	result, err := a.posts.List(service.PostFilter{FollowerID: &user.ID}, pageParam(c), a.pageSize)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "follow.html", gin.H{
			"title": "关注流",
			"error": "获取文章失败",
		})
		return
	}

	c.HTML(http.StatusOK, "follow.html", gin.H{
		"title":    "关注流",
		"posts":    result.Posts,
		"pageInfo": result.PageInfo,
		"user":     user,
	})
}

// FollowAuthor 关注指定作者后跳回其主页，自关注静默忽略
func (a *API) FollowAuthor(c *gin.Context) {
	a.changeFollow(c, func(userID, authorID uint) error {
		return a.follows.Follow(userID, authorID)
	})
}

// UnfollowAuthor 取消关注后跳回作者主页，边不存在时同样直接跳转
func (a *API) UnfollowAuthor(c *gin.Context) {
	a.changeFollow(c, func(userID, authorID uint) error {
		return a.follows.Unfollow(userID, authorID)
	})
}

func (a *API) changeFollow(c *gin.Context, action func(userID, authorID uint) error) {
	author, err := a.users.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderNotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "获取用户失败")
		return
	}

	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/auth/login/?next=%s", c.Request.URL.Path))
		return
	}

	if err := action(user.ID, author.ID); err != nil {
		c.String(http.StatusInternalServerError, "操作失败")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}
