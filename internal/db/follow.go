package db

import "gorm.io/gorm"

// Follow 定义了关注关系：UserID 关注 AuthorID。
// 复合唯一索引保证同一对用户之间最多只有一条边；
// 禁止自关注在服务层校验，不作为存储约束。
type Follow struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_follows_user_author"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follows_user_author"`
}
