package db

import "gorm.io/gorm"

// Comment 定义了评论模型，创建后不可修改
type Comment struct {
	gorm.Model
	Text   string `gorm:"not null"`
	PostID uint   `gorm:"not null;index"`
	Post   Post
	UserID uint `gorm:"not null;index"`
	User   User
}
