package service

import (
	"errors"
	"strings"

	"github.com/yatube/internal/db"
	"gorm.io/gorm"
)

var ErrCommentTextRequired = errors.New("comment text is required")

// CommentService wraps comment related database operations.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// ListByPost 返回某篇文章的全部评论，按发布时间倒序。
func (s *CommentService) ListByPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc, id desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Create validates and persists a comment on an existing post.
func (s *CommentService) Create(postID, userID uint, text string) (*db.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := db.Comment{Text: text, PostID: postID, UserID: userID}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
