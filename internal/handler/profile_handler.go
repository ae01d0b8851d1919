package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/internal/service"
)

// ShowProfile 渲染作者主页：文章列表、计数以及当前用户是否已关注
func (a *API) ShowProfile(c *gin.Context) {
	author, err := a.users.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "profile.html", gin.H{
			"title": "个人主页",
			"error": "获取用户失败",
		})
		return
	}

	result, err := a.posts.List(service.PostFilter{UserID: &author.ID}, pageParam(c), a.pageSize)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "profile.html", gin.H{
			"title":  author.Username,
			"author": author,
			"error":  "获取文章失败",
		})
		return
	}

	user := a.currentUser(c)
	following := false
	if user != nil {
		following, _ = a.follows.IsFollowing(user.ID, author.ID)
	}

	followerCount, _ := a.follows.CountFollowers(author.ID)
	followingCount, _ := a.follows.CountFollowing(author.ID)

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"title":          author.Username,
		"author":         author,
		"posts":          result.Posts,
		"pageInfo":       result.PageInfo,
		"postCount":      result.Total,
		"following":      following,
		"followerCount":  followerCount,
		"followingCount": followingCount,
		"user":           user,
	})
}
