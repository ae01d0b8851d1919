package cache

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PageCache 是一个按请求路径缓存整页响应的 TTL 缓存。
// 只缓存 GET 请求的 200 响应；写操作不触发失效，
// 过期前读到的陈旧页面属于接受的设计取舍。
type PageCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]pageEntry
	now     func() time.Time
}

type pageEntry struct {
	body        []byte
	contentType string
	expiresAt   time.Time
}

// NewPageCache creates a page cache with the given entry lifetime.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		entries: make(map[string]pageEntry),
		now:     time.Now,
	}
}

// Middleware 返回包裹目标路由的缓存中间件。
func (p *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, contentType, ok := p.get(key); ok {
			c.Data(http.StatusOK, contentType, body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			p.set(key, writer.buf.Bytes(), writer.Header().Get("Content-Type"))
		}
	}
}

// Clear drops every cached page.
func (p *PageCache) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[string]pageEntry)
}

func (p *PageCache) get(key string) ([]byte, string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.entries[key]
	if !ok || p.now().After(entry.expiresAt) {
		return nil, "", false
	}
	return entry.body, entry.contentType, true
}

func (p *PageCache) set(key string, body []byte, contentType string) {
	if p.ttl <= 0 {
		return
	}

	stored := make([]byte, len(body))
	copy(stored, body)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[key] = pageEntry{
		body:        stored,
		contentType: contentType,
		expiresAt:   p.now().Add(p.ttl),
	}
}

// captureWriter 在写出响应的同时保留一份副本用于缓存。
type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.buf.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
