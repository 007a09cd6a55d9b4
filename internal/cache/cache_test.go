package cache

import (
	"context"
	"testing"
	"time"
)

func TestPageCacheSetAndGet(t *testing.T) {
	pages, err := NewPageCache(time.Minute)
	if err != nil {
		t.Fatalf("new page cache: %v", err)
	}
	ctx := context.Background()

	if _, ok := pages.Get(ctx, "/blog"); ok {
		t.Fatal("expected miss on empty cache")
	}

	page := &Page{Status: 200, ContentType: "text/html; charset=utf-8", Body: []byte("<html>hi</html>")}
	pages.Set(ctx, "/blog", page)
	pages.Wait()

	got, ok := pages.Get(ctx, "/blog")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got.Status != 200 || string(got.Body) != "<html>hi</html>" {
		t.Fatalf("unexpected cached page: %+v", got)
	}
}

func TestPageCacheEntriesExpire(t *testing.T) {
	pages, err := NewPageCache(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("new page cache: %v", err)
	}
	ctx := context.Background()

	pages.Set(ctx, "/", &Page{Status: 200, Body: []byte("stale soon")})
	pages.Wait()

	if _, ok := pages.Get(ctx, "/"); !ok {
		t.Fatal("expected hit inside the window")
	}

	time.Sleep(300 * time.Millisecond)

	if _, ok := pages.Get(ctx, "/"); ok {
		t.Fatal("expected entry to expire after the window")
	}
}

func TestPageCacheTTL(t *testing.T) {
	pages, err := NewPageCache(time.Hour)
	if err != nil {
		t.Fatalf("new page cache: %v", err)
	}
	if pages.TTL() != time.Hour {
		t.Fatalf("expected configured ttl, got %v", pages.TTL())
	}
}
