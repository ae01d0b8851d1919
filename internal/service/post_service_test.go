package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yatube/internal/db"
)

func TestCreatePost(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	author := seedUser(t, gdb, "leo")
	group := seedGroup(t, gdb, "Go 语言", "golang")

	post, err := posts.Create(PostInput{Text: "  первый пост  ", GroupID: &group.ID, UserID: author.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.Text != "первый пост" {
		t.Errorf("text = %q, want trimmed", post.Text)
	}
	if post.UserID != author.ID {
		t.Errorf("author = %d, want %d", post.UserID, author.ID)
	}
	if post.Group == nil || post.Group.Slug != "golang" {
		t.Error("group should be preloaded on the created post")
	}
	if post.CreatedAt.IsZero() {
		t.Error("created at should be stamped on insert")
	}
}

func TestCreatePostValidation(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	author := seedUser(t, gdb, "leo")

	if _, err := posts.Create(PostInput{Text: "   ", UserID: author.ID}); !errors.Is(err, ErrTextRequired) {
		t.Errorf("blank text: err = %v, want ErrTextRequired", err)
	}

	missing := uint(999)
	if _, err := posts.Create(PostInput{Text: "ok", GroupID: &missing, UserID: author.ID}); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("missing group: err = %v, want ErrGroupNotFound", err)
	}

	var count int64
	gdb.Model(&db.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid submissions must not persist, found %d posts", count)
	}
}

func TestUpdatePostKeepsAuthorAndPubDate(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	author := seedUser(t, gdb, "leo")
	group := seedGroup(t, gdb, "随笔", "essays")
	created, err := posts.Create(PostInput{Text: "до правки", UserID: author.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := posts.Update(created.ID, PostInput{Text: "после правки", GroupID: &group.ID})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Text != "после правки" {
		t.Errorf("text = %q", updated.Text)
	}
	if updated.GroupID == nil || *updated.GroupID != group.ID {
		t.Error("group change should persist")
	}
	if updated.UserID != author.ID {
		t.Error("update must not change the author")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must not change the publication time")
	}

	// 清空小组同样生效
	cleared, err := posts.Update(created.ID, PostInput{Text: "после правки"})
	if err != nil {
		t.Fatalf("clearing group failed: %v", err)
	}
	if cleared.GroupID != nil {
		t.Error("group should be cleared when the form omits it")
	}
}

func TestUpdateMissingPost(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Update(12345, PostInput{Text: "x"}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	author := seedUser(t, gdb, "leo")

	for i := 0; i < 5; i++ {
		seedPost(t, gdb, author.ID, fmt.Sprintf("пост %d", i), nil)
	}

	result, err := posts.List(PostFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Posts) != 5 {
		t.Fatalf("got %d posts, want 5", len(result.Posts))
	}
	for i := 1; i < len(result.Posts); i++ {
		if result.Posts[i-1].ID < result.Posts[i].ID {
			t.Fatal("posts must be ordered newest first")
		}
	}
}

func TestListPaginationCounts(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	author := seedUser(t, gdb, "leo")
	for i := 0; i < 7; i++ {
		seedPost(t, gdb, author.ID, fmt.Sprintf("пост %d", i), nil)
	}

	wantCounts := map[int]int{1: 3, 2: 3, 3: 1}
	for page, want := range wantCounts {
		result, err := posts.List(PostFilter{}, page, 3)
		if err != nil {
			t.Fatalf("list page %d failed: %v", page, err)
		}
		if len(result.Posts) != want {
			t.Errorf("page %d: got %d posts, want %d", page, len(result.Posts), want)
		}
		if result.TotalPages != 3 {
			t.Errorf("page %d: total pages = %d, want 3", page, result.TotalPages)
		}
	}

	// 越界页码收敛到末页
	result, err := posts.List(PostFilter{}, 42, 3)
	if err != nil {
		t.Fatalf("out of range page errored: %v", err)
	}
	if result.Page != 3 || len(result.Posts) != 1 {
		t.Errorf("page 42 should clamp to page 3 with 1 post, got page %d with %d posts", result.Page, len(result.Posts))
	}
}

func TestListByGroupAndAuthor(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	leo := seedUser(t, gdb, "leo")
	nika := seedUser(t, gdb, "nika")
	group := seedGroup(t, gdb, "Go 语言", "golang")

	inGroup := seedPost(t, gdb, leo.ID, "в группе", &group.ID)
	seedPost(t, gdb, leo.ID, "без группы", nil)
	seedPost(t, gdb, nika.ID, "чужой пост", nil)

	byGroup, err := posts.List(PostFilter{GroupID: &group.ID}, 1, 10)
	if err != nil {
		t.Fatalf("list by group failed: %v", err)
	}
	if len(byGroup.Posts) != 1 || byGroup.Posts[0].ID != inGroup.ID {
		t.Errorf("group filter returned wrong posts: %+v", byGroup.Posts)
	}

	byAuthor, err := posts.List(PostFilter{UserID: &leo.ID}, 1, 10)
	if err != nil {
		t.Fatalf("list by author failed: %v", err)
	}
	if len(byAuthor.Posts) != 2 {
		t.Errorf("author filter: got %d posts, want 2", len(byAuthor.Posts))
	}
	for _, post := range byAuthor.Posts {
		if post.UserID != leo.ID {
			t.Errorf("author filter leaked post of user %d", post.UserID)
		}
	}
}

func TestFeedContainsExactlyFollowedAuthors(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)
	follows := NewFollowService(gdb)
	reader := seedUser(t, gdb, "reader")
	followed := seedUser(t, gdb, "followed")
	stranger := seedUser(t, gdb, "stranger")

	followedPost := seedPost(t, gdb, followed.ID, "пост автора", nil)
	seedPost(t, gdb, stranger.ID, "посторонний пост", nil)
	seedPost(t, gdb, reader.ID, "собственный пост", nil)

	if err := follows.Follow(reader.ID, followed.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	feed, err := posts.List(PostFilter{FollowerID: &reader.ID}, 1, 10)
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if len(feed.Posts) != 1 || feed.Posts[0].ID != followedPost.ID {
		t.Fatalf("feed should contain exactly the followed author's posts, got %+v", feed.Posts)
	}

	// 取消关注后信息流为空
	if err := follows.Unfollow(reader.ID, followed.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	feed, err = posts.List(PostFilter{FollowerID: &reader.ID}, 1, 10)
	if err != nil {
		t.Fatalf("feed after unfollow failed: %v", err)
	}
	if len(feed.Posts) != 0 {
		t.Errorf("feed after unfollow should be empty, got %d posts", len(feed.Posts))
	}
}

func TestGetMissingPost(t *testing.T) {
	gdb := setupTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Get(777); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}
