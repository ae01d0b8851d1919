package cache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newCachedRouter 返回一个计数的路由，响应体随处理次数变化
func newCachedRouter(cache *PageCache) (*gin.Engine, *int) {
	hits := 0
	r := gin.New()
	r.GET("/", cache.Middleware(), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "body %d", hits)
	})
	return r, &hits
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCachedResponseIsByteIdentical(t *testing.T) {
	cache := NewPageCache(time.Minute)
	r, hits := newCachedRouter(cache)

	first := get(r, "/")
	second := get(r, "/")

	if first.Body.String() != second.Body.String() {
		t.Errorf("cached read differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if *hits != 1 {
		t.Errorf("handler ran %d times, want 1", *hits)
	}
}

func TestClearMakesNextReadFresh(t *testing.T) {
	cache := NewPageCache(time.Minute)
	r, hits := newCachedRouter(cache)

	get(r, "/")
	cache.Clear()
	fresh := get(r, "/")

	if *hits != 2 {
		t.Errorf("handler ran %d times, want 2 after clear", *hits)
	}
	if fresh.Body.String() != "body 2" {
		t.Errorf("read after clear = %q, want the new content", fresh.Body.String())
	}
}

func TestEntriesExpire(t *testing.T) {
	cache := NewPageCache(time.Second)
	current := time.Now()
	cache.now = func() time.Time { return current }

	r, hits := newCachedRouter(cache)
	get(r, "/")
	current = current.Add(2 * time.Second)
	get(r, "/")

	if *hits != 2 {
		t.Errorf("handler ran %d times, want 2 after expiry", *hits)
	}
}

func TestDistinctPathsCachedSeparately(t *testing.T) {
	cache := NewPageCache(time.Minute)
	r := gin.New()
	r.GET("/p/:n", cache.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, fmt.Sprintf("page %s", c.Param("n")))
	})

	if got := get(r, "/p/1").Body.String(); got != "page 1" {
		t.Errorf("got %q", got)
	}
	if got := get(r, "/p/2").Body.String(); got != "page 2" {
		t.Errorf("second path should not reuse the first entry, got %q", got)
	}
}

func TestNonOKResponsesNotCached(t *testing.T) {
	cache := NewPageCache(time.Minute)
	hits := 0
	r := gin.New()
	r.GET("/", cache.Middleware(), func(c *gin.Context) {
		hits++
		c.String(http.StatusInternalServerError, "boom")
	})

	get(r, "/")
	get(r, "/")
	if hits != 2 {
		t.Errorf("error responses must not be cached, handler ran %d times", hits)
	}
}

func TestZeroTTLStoresNothing(t *testing.T) {
	cache := NewPageCache(0)
	r, hits := newCachedRouter(cache)

	get(r, "/")
	get(r, "/")
	if *hits != 2 {
		t.Errorf("zero ttl cache stored a page, handler ran %d times", *hits)
	}
}
