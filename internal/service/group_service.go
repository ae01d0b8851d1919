package service

import (
	"errors"
	"strings"

	"github.com/yatube/internal/db"
	"gorm.io/gorm"
)

var ErrGroupSlugTaken = errors.New("group slug already taken")

// GroupService wraps group related database operations.
// 小组只能由运维脚本或后台创建，没有公开的创建入口；
// slug 一经引用即不可变，因此这里不提供更新方法。
type GroupService struct {
	db *gorm.DB
}

// NewGroupService creates a GroupService instance.
func NewGroupService(gdb *gorm.DB) *GroupService {
	return &GroupService{db: gdb}
}

// List returns all groups ordered by title.
func (s *GroupService) List() ([]db.Group, error) {
	var groups []db.Group
	if err := s.db.Order("title asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetBySlug fetches a group by its unique slug.
func (s *GroupService) GetBySlug(slug string) (*db.Group, error) {
	var group db.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// Create persists a new group with a unique slug.
func (s *GroupService) Create(title, slug, description string) (*db.Group, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)
	if title == "" || slug == "" {
		return nil, errors.New("group title and slug are required")
	}

	var count int64
	if err := s.db.Model(&db.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrGroupSlugTaken
	}

	group := db.Group{Title: title, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
