package service

import (
	"github.com/yatube/internal/db"
	"gorm.io/gorm"
)

// FollowService wraps follow edge operations.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a FollowService instance.
func NewFollowService(gdb *gorm.DB) *FollowService {
	return &FollowService{db: gdb}
}

// Follow 创建 userID -> authorID 的关注边。
// 自关注静默忽略；重复关注不产生新边。FirstOrCreate 配合
// (user_id, author_id) 唯一索引保证并发的相同请求只落一条记录。
func (s *FollowService) Follow(userID, authorID uint) error {
	if userID == authorID {
		return nil
	}
	var edge db.Follow
	return s.db.
		Where(db.Follow{UserID: userID, AuthorID: authorID}).
		FirstOrCreate(&edge).Error
}

// Unfollow 删除匹配的关注边，边不存在时视为成功。
func (s *FollowService) Unfollow(userID, authorID uint) error {
	return s.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&db.Follow{}).Error
}

// IsFollowing reports whether userID follows authorID.
func (s *FollowService) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&db.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers returns how many users follow the given author.
func (s *FollowService) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&db.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CountFollowing returns how many authors the given user follows.
func (s *FollowService) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&db.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
