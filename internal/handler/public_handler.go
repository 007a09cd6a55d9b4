package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	featuredLimit = 3
	recentLimit   = 5
	relatedLimit  = 3
)

// searchResult is the projection returned by the public search endpoint.
type searchResult struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featuredImage"`
	Author        string     `json:"author"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

// ShowHome renders the public home page with featured and recent posts.
func (a *API) ShowHome(c *gin.Context) {
	featured, err := a.posts.ListFeatured(featuredLimit)
	if err != nil {
		a.renderPublicError(c, "home.html")
		return
	}

	recent, err := a.posts.ListRecent(recentLimit)
	if err != nil {
		a.renderPublicError(c, "home.html")
		return
	}

	popular, err := a.posts.ListPopular(recentLimit)
	if err != nil {
		popular = nil
	}

	categories, err := a.categories.List()
	if err != nil {
		categories = nil
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"title":      a.siteName(),
		"site":       a.siteName(),
		"featured":   featured,
		"recent":     recent,
		"popular":    popular,
		"categories": categories,
		"year":       time.Now().Year(),
	})
}

// ShowBlogList renders the full published listing, newest first.
func (a *API) ShowBlogList(c *gin.Context) {
	posts, err := a.posts.ListPublished()
	if err != nil {
		a.renderPublicError(c, "blog_list.html")
		return
	}

	c.HTML(http.StatusOK, "blog_list.html", gin.H{
		"title": "Blog",
		"site":  a.siteName(),
		"posts": posts,
		"year":  time.Now().Year(),
	})
}

// ShowPostDetail renders a published post looked up by slug.
func (a *API) ShowPostDetail(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"title": "Not found",
			"site":  a.siteName(),
		})
		return
	}

	// Fire-and-forget: a lost increment under concurrency is acceptable.
	go func(postID string) {
		if err := a.posts.IncrementViews(postID); err != nil {
			log.Error().Err(err).Str("post", postID).Msg("failed to record view")
		}
	}(post.ID)

	authors, err := a.posts.AuthorsFor(post.ID)
	if err != nil {
		authors = nil
	}

	related, err := a.posts.ListRelated(post.ID, relatedLimit)
	if err != nil {
		related = nil
	}

	c.HTML(http.StatusOK, "post_detail.html", gin.H{
		"title":   post.Title,
		"site":    a.siteName(),
		"post":    post,
		"content": renderContent(post.Content),
		"authors": authors,
		"related": related,
		"year":    time.Now().Year(),
	})
}

// ShowCategories lists all categories in display order.
func (a *API) ShowCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		a.renderPublicError(c, "category_list.html")
		return
	}

	c.HTML(http.StatusOK, "category_list.html", gin.H{
		"title":      "Categories",
		"site":       a.siteName(),
		"categories": categories,
		"year":       time.Now().Year(),
	})
}

// ShowCategory renders a category's published posts.
func (a *API) ShowCategory(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"title": "Not found",
			"site":  a.siteName(),
		})
		return
	}

	posts, err := a.posts.ListByCategory(category.ID)
	if err != nil {
		a.renderPublicError(c, "category.html")
		return
	}

	c.HTML(http.StatusOK, "category.html", gin.H{
		"title":    category.Name,
		"site":     a.siteName(),
		"category": category,
		"posts":    posts,
		"year":     time.Now().Year(),
	})
}

// ShowAuthors lists all authors.
func (a *API) ShowAuthors(c *gin.Context) {
	authors, err := a.authors.List()
	if err != nil {
		a.renderPublicError(c, "author_list.html")
		return
	}

	c.HTML(http.StatusOK, "author_list.html", gin.H{
		"title":   "Authors",
		"site":    a.siteName(),
		"authors": authors,
		"year":    time.Now().Year(),
	})
}

// ShowAuthorDetail renders an author profile with their published posts.
func (a *API) ShowAuthorDetail(c *gin.Context) {
	author, err := a.authors.GetBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"title": "Not found",
			"site":  a.siteName(),
		})
		return
	}

	posts, err := a.posts.ListByAuthor(author.ID)
	if err != nil {
		a.renderPublicError(c, "author.html")
		return
	}

	c.HTML(http.StatusOK, "author.html", gin.H{
		"title":  author.Name,
		"site":   a.siteName(),
		"author": author,
		"posts":  posts,
		"year":   time.Now().Year(),
	})
}

// ShowTagArchive renders the published posts carrying a tag.
func (a *API) ShowTagArchive(c *gin.Context) {
	tag, err := a.tags.GetBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"title": "Not found",
			"site":  a.siteName(),
		})
		return
	}

	posts, err := a.posts.ListByTag(tag.ID)
	if err != nil {
		a.renderPublicError(c, "tag.html")
		return
	}

	c.HTML(http.StatusOK, "tag.html", gin.H{
		"title": tag.Name,
		"site":  a.siteName(),
		"tag":   tag,
		"posts": posts,
		"year":  time.Now().Year(),
	})
}

// SearchPosts handles GET /search?q=. An empty or missing term returns an
// empty result list, not an error.
func (a *API) SearchPosts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
		return
	}

	posts, err := a.posts.Search(term)
	if err != nil {
		respondStorageError(c, err, "Failed to search posts")
		return
	}

	results := lo.Map(posts, func(post db.Post, _ int) searchResult {
		return searchResult{
			ID:            post.ID,
			Title:         post.Title,
			Slug:          post.Slug,
			Excerpt:       post.Excerpt,
			FeaturedImage: post.FeaturedImage,
			Author:        post.Author,
			PublishedAt:   post.PublishedAt,
		}
	})

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (a *API) renderPublicError(c *gin.Context, tmpl string) {
	c.HTML(http.StatusInternalServerError, tmpl, gin.H{
		"title": a.siteName(),
		"site":  a.siteName(),
		"error": "Failed to load content",
		"year":  time.Now().Year(),
	})
}

// renderContent converts post bodies for display. Content is markdown or
// HTML, auto-detected: bodies that already open with a tag skip the
// markdown pass. Either way the output is sanitized.
func renderContent(content string) template.HTML {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<") {
		return template.HTML(sanitizer.Sanitize(trimmed))
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
