package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/yatube/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Group{}, &db.Post{}, &db.Comment{}, &db.Follow{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) db.User {
	t.Helper()
	user := db.User{Username: username, Password: "hashed"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedGroup(t *testing.T, gdb *gorm.DB, title, slug string) db.Group {
	t.Helper()
	group := db.Group{Title: title, Slug: slug}
	if err := gdb.Create(&group).Error; err != nil {
		t.Fatalf("failed to seed group %s: %v", slug, err)
	}
	return group
}

func seedPost(t *testing.T, gdb *gorm.DB, userID uint, text string, groupID *uint) db.Post {
	t.Helper()
	post := db.Post{Text: text, UserID: userID, GroupID: groupID}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}
