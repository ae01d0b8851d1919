package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// pageParam 解析 ?page= 参数，非法输入回落到第 1 页。
func pageParam(c *gin.Context) int {
	return parsePositiveInt(c.DefaultQuery("page", "1"), 1)
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"title": "页面不存在",
	})
}

// NotFound 供路由层挂载到 NoRoute
func (a *API) NotFound(c *gin.Context) {
	renderNotFound(c)
}
