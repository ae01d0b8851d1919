package service

import (
	"errors"
	"strings"

	"github.com/yatube/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrTextRequired  = errors.New("post text is required")
	ErrGroupNotFound = errors.New("group not found")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes which base collection of posts to list.
// Zero value means all posts; at most one field should be set.
type PostFilter struct {
	GroupID *uint
	UserID  *uint
	// FollowerID selects posts authored by users this user follows.
	FollowerID *uint
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Posts []db.Post
	PageInfo
}

// PostInput represents fields accepted when creating or updating a post.
// UserID 仅在创建时写入，更新永远不会改动作者和发布时间。
type PostInput struct {
	Text     string
	GroupID  *uint
	UserID   uint
	ImageURL string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List 按过滤条件和页码返回文章，统一按发布时间倒序。
func (s *PostService) List(filter PostFilter, page, perPage int) (*PostListResult, error) {
	base := s.applyFilter(s.db.Model(&db.Post{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	info, offset := resolvePage(total, page, perPage)

	var posts []db.Post
	dataQuery := s.applyFilter(s.db.Model(&db.Post{}).Preload("User").Preload("Group"), filter)
	if err := dataQuery.
		Order("posts.created_at desc, posts.id desc").
		Limit(info.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return &PostListResult{Posts: posts, PageInfo: info}, nil
}

func (s *PostService) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	switch {
	case filter.GroupID != nil:
		return query.Where("posts.group_id = ?", *filter.GroupID)
	case filter.UserID != nil:
		return query.Where("posts.user_id = ?", *filter.UserID)
	case filter.FollowerID != nil:
		return query.Where(
			"posts.user_id IN (?)",
			s.db.Model(&db.Follow{}).Select("author_id").Where("user_id = ?", *filter.FollowerID),
		)
	}
	return query
}

// Get fetches a post by id with author and group preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post after validating its text and group reference.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if err := s.checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	post := db.Post{
		Text:     text,
		UserID:   input.UserID,
		GroupID:  input.GroupID,
		ImageURL: input.ImageURL,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return s.Get(post.ID)
}

// Update applies text/group/image changes to an existing post.
// 作者与 CreatedAt 不在可更新字段之列。
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if err := s.checkGroup(input.GroupID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"text":     text,
		"group_id": input.GroupID,
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
	}

	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *PostService) checkGroup(groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&db.Group{}).Where("id = ?", *groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGroupNotFound
	}
	return nil
}
