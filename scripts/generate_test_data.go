package main

import (
	"fmt"
	"log"

	"github.com/yatube/internal/config"
	"github.com/yatube/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// 测试数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	createTestUsers()
	createTestGroups()
	createTestPosts()
	createTestFollows()

	fmt.Println("测试数据生成完成！")
	fmt.Println("用户: leo / nika / fedya (密码均为 test123)")
}

// 创建测试用户
func createTestUsers() {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，跳过创建")
		return
	}

	for _, username := range []string{"leo", "nika", "fedya"} {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("test123"), bcrypt.DefaultCost)
		db.DB.Create(&db.User{Username: username, Password: string(hashedPassword)})
	}

	fmt.Println("✅ 测试用户创建完成")
}

// 创建测试小组
func createTestGroups() {
	var count int64
	db.DB.Model(&db.Group{}).Count(&count)
	if count > 0 {
		fmt.Println("小组已存在，跳过创建")
		return
	}

	groups := []db.Group{
		{Title: "Go 语言", Slug: "golang", Description: "Go 语言开发相关的讨论"},
		{Title: "随笔", Slug: "essays", Description: "生活随笔与思考"},
		{Title: "读书", Slug: "books", Description: "读书笔记与书评"},
	}
	for i := range groups {
		db.DB.Create(&groups[i])
	}

	fmt.Println("✅ 测试小组创建完成")
}

// 创建测试文章与评论
func createTestPosts() {
	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return
	}

	var leo, nika db.User
	db.DB.Where("username = ?", "leo").First(&leo)
	db.DB.Where("username = ?", "nika").First(&nika)

	var golang db.Group
	db.DB.Where("slug = ?", "golang").First(&golang)

	posts := []db.Post{
		{Text: "第一篇测试文章：用 gin 和 gorm 搭一个小型博客。", UserID: leo.ID, GroupID: &golang.ID},
		{Text: "分页器的边界条件比想象中多：越界页、非法页码、空列表。", UserID: leo.ID, GroupID: &golang.ID},
		{Text: "今天开始记录每天的阅读时间。", UserID: nika.ID},
	}
	for i := range posts {
		db.DB.Create(&posts[i])
	}

	db.DB.Create(&db.Comment{Text: "期待后续更新！", PostID: posts[0].ID, UserID: nika.ID})

	fmt.Println("✅ 测试文章创建完成")
}

// 创建测试关注关系
func createTestFollows() {
	var count int64
	db.DB.Model(&db.Follow{}).Count(&count)
	if count > 0 {
		fmt.Println("关注关系已存在，跳过创建")
		return
	}

	var leo, nika, fedya db.User
	db.DB.Where("username = ?", "leo").First(&leo)
	db.DB.Where("username = ?", "nika").First(&nika)
	db.DB.Where("username = ?", "fedya").First(&fedya)

	db.DB.Create(&db.Follow{UserID: nika.ID, AuthorID: leo.ID})
	db.DB.Create(&db.Follow{UserID: fedya.ID, AuthorID: leo.ID})
	db.DB.Create(&db.Follow{UserID: fedya.ID, AuthorID: nika.ID})

	fmt.Println("✅ 测试关注关系创建完成")
}
