package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/enmanuellle/lemahotelreservas/internal/config"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyCapture tees the response body so a successful reply can be stored.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful responses of configured methods in Redis.
// It is applied to read-heavy public endpoints (current rate, catalog
// listings).  Cache entries expire after cfg.TTL, which bounds how stale a
// cached rate can be.  When Redis is unavailable the middleware passes
// requests straight through.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !cfg.Methods[req.Method] {
				return next(c)
			}
			key := cfg.Prefix + ":" + req.Method + ":" + req.URL.RequestURI()
			ctx := req.Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			capture := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = capture
			if err := next(c); err != nil {
				return err
			}

			if capture.status >= 200 && capture.status < 300 && capture.buf.Len() <= cfg.MaxBodyBytes {
				entry := cachedResponse{
					Status:      capture.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        capture.buf.Bytes(),
				}
				if raw, err := json.Marshal(entry); err == nil {
					// Best effort: a failed SET only costs the next request a miss.
					storeCtx, cancel := contextWithTimeout(ctx, 500*time.Millisecond)
					rdb.Set(storeCtx, key, raw, cfg.TTL)
					cancel()
				}
			}
			return nil
		}
	}
}
