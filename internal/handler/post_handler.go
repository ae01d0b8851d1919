package handler

import (
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// 注册图片解码器，用于上传前探测文件是否为合法图片
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatube/internal/db"
	"github.com/yatube/internal/service"
)

// postFormValues 承载文章表单的输入与校验结果
type postFormValues struct {
	Text     string
	GroupID  *uint
	GroupRaw string
	ImageURL string
	Errors   map[string]string
}

func (v *postFormValues) addError(field, message string) {
	if v.Errors == nil {
		v.Errors = map[string]string{}
	}
	v.Errors[field] = message
}

// ShowIndex 渲染首页文章列表
func (a *API) ShowIndex(c *gin.Context) {
	result, err := a.posts.List(service.PostFilter{}, pageParam(c), a.pageSize)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"title": "首页",
			"error": "获取文章失败",
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    "首页",
		"posts":    result.Posts,
		"pageInfo": result.PageInfo,
		"user":     a.currentUser(c),
	})
}

// ShowGroup 渲染小组文章列表
func (a *API) ShowGroup(c *gin.Context) {
	group, err := a.groups.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "group_list.html", gin.H{
			"title": "小组",
			"error": "获取小组失败",
		})
		return
	}

	result, err := a.posts.List(service.PostFilter{GroupID: &group.ID}, pageParam(c), a.pageSize)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "group_list.html", gin.H{
			"title": group.Title,
			"group": group,
			"error": "获取文章失败",
		})
		return
	}

	c.HTML(http.StatusOK, "group_list.html", gin.H{
		"title":    group.Title,
		"group":    group,
		"posts":    result.Posts,
		"pageInfo": result.PageInfo,
		"user":     a.currentUser(c),
	})
}

// ShowPostDetail 渲染文章详情与评论列表
func (a *API) ShowPostDetail(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}

	comments, err := a.comments.ListByPost(post.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "post_detail.html", gin.H{
			"title": "文章详情",
			"post":  post,
			"error": "获取评论失败",
		})
		return
	}

	c.HTML(http.StatusOK, "post_detail.html", gin.H{
		"title":    "文章详情",
		"post":     post,
		"postHTML": renderMarkdown(post.Text),
		"comments": comments,
		"user":     a.currentUser(c),
	})
}

// ShowPostCreate 渲染发布文章的表单
func (a *API) ShowPostCreate(c *gin.Context) {
	a.renderPostForm(c, http.StatusOK, postFormValues{}, nil)
}

// CreatePost 处理文章创建。
// 校验通过时以当前登录用户为作者落库并跳转到其个人主页，
// 否则带字段错误重新渲染表单，不产生任何写入。
func (a *API) CreatePost(c *gin.Context) {
	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/auth/login/?next=%s", c.Request.URL.Path))
		return
	}

	values := a.bindPostForm(c)
	if len(values.Errors) > 0 {
		a.renderPostForm(c, http.StatusOK, values, nil)
		return
	}

	_, err := a.posts.Create(service.PostInput{
		Text:     values.Text,
		GroupID:  values.GroupID,
		UserID:   user.ID,
		ImageURL: values.ImageURL,
	})
	if err != nil {
		a.applyPostError(&values, err)
		a.renderPostForm(c, http.StatusOK, values, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// ShowPostEdit 渲染编辑表单，非作者直接跳回详情页
func (a *API) ShowPostEdit(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}

	user := a.currentUser(c)
	if user == nil || user.ID != post.UserID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	a.renderPostForm(c, http.StatusOK, boundToPost(post, nil), post)
}

// UpdatePost 处理文章编辑。
// 作者校验先于一切写入；校验失败时回填提交值重新渲染表单。
func (a *API) UpdatePost(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}

	user := a.currentUser(c)
	if user == nil || user.ID != post.UserID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	values := a.bindPostForm(c)
	if len(values.Errors) > 0 {
		// 编辑校验失败时回到数据库里的原始内容，只保留错误提示
		a.renderPostForm(c, http.StatusOK, boundToPost(post, values.Errors), post)
		return
	}

	if _, err := a.posts.Update(post.ID, service.PostInput{
		Text:     values.Text,
		GroupID:  values.GroupID,
		ImageURL: values.ImageURL,
	}); err != nil {
		a.applyPostError(&values, err)
		a.renderPostForm(c, http.StatusOK, values, post)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// AddComment 处理评论提交。
// TODO: 空评论目前静默跳回详情页，不给任何提示；待产品确认
// 是否要在详情页展示表单错误后再调整。
func (a *API) AddComment(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}

	user := a.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/auth/login/?next=%s", c.Request.URL.Path))
		return
	}

	_, err := a.comments.Create(post.ID, user.ID, c.PostForm("text"))
	if err != nil && !errors.Is(err, service.ErrCommentTextRequired) {
		c.HTML(http.StatusInternalServerError, "post_detail.html", gin.H{
			"title": "文章详情",
			"post":  post,
			"error": "评论发布失败",
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// boundToPost 以已保存的文章内容填充表单
func boundToPost(post *db.Post, formErrors map[string]string) postFormValues {
	values := postFormValues{
		Text:     post.Text,
		GroupID:  post.GroupID,
		ImageURL: post.ImageURL,
		Errors:   formErrors,
	}
	if post.GroupID != nil {
		values.GroupRaw = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return values
}

func (a *API) loadPost(c *gin.Context) (*db.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderNotFound(c)
		return nil, false
	}

	post, err := a.posts.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			renderNotFound(c)
			return nil, false
		}
		c.HTML(http.StatusInternalServerError, "not_found.html", gin.H{
			"title": "文章详情",
			"error": "获取文章失败",
		})
		return nil, false
	}
	return post, true
}

// bindPostForm 解析并校验文章表单，包括可选的小组与图片字段
func (a *API) bindPostForm(c *gin.Context) postFormValues {
	values := postFormValues{
		Text:     strings.TrimSpace(c.PostForm("text")),
		GroupRaw: strings.TrimSpace(c.PostForm("group")),
	}

	if values.Text == "" {
		values.addError("text", "正文不能为空")
	}

	if values.GroupRaw != "" {
		groupID, err := strconv.ParseUint(values.GroupRaw, 10, 32)
		if err != nil {
			values.addError("group", "请选择有效的小组")
		} else {
			id := uint(groupID)
			values.GroupID = &id
		}
	}

	imageURL, fieldErr := a.saveUploadedImage(c)
	if fieldErr != "" {
		values.addError("image", fieldErr)
	}
	values.ImageURL = imageURL

	return values
}

func (a *API) applyPostError(values *postFormValues, err error) {
	switch {
	case errors.Is(err, service.ErrTextRequired):
		values.addError("text", "正文不能为空")
	case errors.Is(err, service.ErrGroupNotFound):
		values.addError("group", "所选小组不存在")
	default:
		values.addError("form", "保存失败，请稍后重试")
	}
}

func (a *API) renderPostForm(c *gin.Context, status int, values postFormValues, editing *db.Post) {
	groups, err := a.groups.List()
	if err != nil {
		groups = nil
	}

	data := gin.H{
		"title":  "发布文章",
		"form":   values,
		"groups": groups,
		"user":   a.currentUser(c),
	}
	if editing != nil {
		data["title"] = "编辑文章"
		data["isEdit"] = true
		data["post"] = editing
	}
	c.HTML(status, "post_form.html", data)
}

// saveUploadedImage 保存可选的图片附件并返回可访问的 URL。
// 没有附件时返回空串；附件不是合法图片时返回字段错误信息。
func (a *API) saveUploadedImage(c *gin.Context) (string, string) {
	file, err := c.FormFile("image")
	if err != nil {
		// 普通表单提交或未选择文件都视为没有附件
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", ""
		}
		return "", "图片上传失败"
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "只允许上传图片文件"
	}

	if !probeImage(file) {
		return "", "图片文件无法识别"
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", "图片上传失败"
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, newFilename)); err != nil {
		return "", "图片上传失败"
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(a.uploadURL, "/"), newFilename), ""
}

// probeImage 解码图片头部，校验附件确实是图片
func probeImage(file *multipart.FileHeader) bool {
	reader, err := file.Open()
	if err != nil {
		return false
	}
	defer reader.Close()

	_, _, err = image.DecodeConfig(reader)
	return err == nil
}
