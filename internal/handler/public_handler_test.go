package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestSearchEmptyQueryReturnsEmptyResults(t *testing.T) {
	_, engine, _ := setupHandlerTest(t)

	for _, path := range []string{"/search", "/search?q=", "/search?q=%20%20"} {
		rec := doJSON(t, engine, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		got := decodeBody(t, rec)
		results, ok := got["results"].([]any)
		if !ok {
			t.Fatalf("%s: expected results array, got %v", path, got)
		}
		if len(results) != 0 {
			t.Fatalf("%s: expected empty results, got %v", path, results)
		}
	}
}

func TestSearchReturnsPublishedProjection(t *testing.T) {
	_, engine, _ := setupHandlerTest(t)
	authorID := createTestAuthor(t, engine, "Ada Lovelace", "ada@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/admin/api/posts", map[string]any{
		"title":     "Published Match",
		"excerpt":   "excerpt",
		"content":   "the quincunx appears here",
		"authorIds": []string{authorID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create published post: %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/admin/api/posts", map[string]any{
		"title":     "Draft Match",
		"excerpt":   "excerpt",
		"content":   "the quincunx appears here too",
		"authorIds": []string{authorID},
		"status":    "draft",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft post: %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodGet, "/search?q=quincunx", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search returned %d", rec.Code)
	}
	got := decodeBody(t, rec)
	results, ok := got["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("expected one published result, got %v", got)
	}

	result := results[0].(map[string]any)
	if result["title"] != "Published Match" {
		t.Fatalf("unexpected title: %v", result["title"])
	}
	if result["slug"] != "published-match" {
		t.Fatalf("unexpected slug: %v", result["slug"])
	}
	if result["author"] != "Ada Lovelace" {
		t.Fatalf("unexpected author: %v", result["author"])
	}
	if result["publishedAt"] == nil {
		t.Fatal("expected publishedAt on a published result")
	}
	for _, key := range []string{"id", "excerpt", "featuredImage"} {
		if _, present := result[key]; !present {
			t.Fatalf("expected %q field in projection, got %v", key, result)
		}
	}
}

func TestRenderContentMarkdown(t *testing.T) {
	out := string(renderContent("# Heading\n\nSome *emphasis* here."))
	if !strings.Contains(out, "<h1") {
		t.Fatalf("expected rendered heading, got %q", out)
	}
	if !strings.Contains(out, "<em>emphasis</em>") {
		t.Fatalf("expected rendered emphasis, got %q", out)
	}
}

func TestRenderContentSanitizesHTML(t *testing.T) {
	out := string(renderContent("<p>safe</p><script>alert(1)</script>"))
	if strings.Contains(out, "<script") {
		t.Fatalf("expected script stripped, got %q", out)
	}
	if !strings.Contains(out, "<p>safe</p>") {
		t.Fatalf("expected safe markup kept, got %q", out)
	}
}
