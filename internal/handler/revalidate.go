package handler

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/cache"
	"github.com/rs/zerolog/log"
)

// bodyCapture buffers the response while it is written to the client so the
// rendered page can be stored for replay.
type bodyCapture struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyCapture) Write(data []byte) (int, error) {
	w.body = append(w.body, data...)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCapture) WriteString(data string) (int, error) {
	w.body = append(w.body, data...)
	return w.ResponseWriter.WriteString(data)
}

// CachePage serves public GET routes from the page cache for the
// revalidation window. A miss renders normally and stores the output; a hit
// replays it without touching the database. Writes never invalidate — an
// admin edit becomes visible when the window lapses.
func CachePage(pages *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			key += "?" + raw
		}

		if page, ok := pages.Get(c.Request.Context(), key); ok {
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		// Only successful renders are worth replaying.
		if capture.Status() != http.StatusOK {
			return
		}

		pages.Set(c.Request.Context(), key, &cache.Page{
			Status:      capture.Status(),
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body,
		})
	}
}

// WarmPublicPages primes the cache for every known post slug plus the
// listing pages, the moral equivalent of build-time static generation.
func WarmPublicPages(engine http.Handler, slugs []string) {
	paths := []string{"/", "/blog", "/categories", "/authors"}
	for _, slug := range slugs {
		paths = append(paths, "/blog/"+slug)
	}

	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			log.Warn().Str("path", path).Int("status", rec.Code).Msg("page warmup skipped")
		}
	}
}
