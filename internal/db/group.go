package db

import "gorm.io/gorm"

// Group 定义了话题小组模型，文章可以选择归属某个小组
type Group struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Description string
	Posts       []Post
}
