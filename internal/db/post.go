package db

import "gorm.io/gorm"

// Post 定义了文章模型。
// CreatedAt 即发布时间，插入时由 gorm 写入一次，之后不再修改。
type Post struct {
	gorm.Model
	Text     string `gorm:"not null"`
	UserID   uint   `gorm:"not null;index"`
	User     User
	GroupID  *uint `gorm:"index"`
	Group    *Group
	ImageURL string
	Comments []Comment
}
