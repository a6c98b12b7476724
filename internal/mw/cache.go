package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheStatusHeader reports whether a response was served from the cache.
const CacheStatusHeader = "X-Cache"

// snapshot is a stored 2xx response. Its headers never carry X-Cache or
// X-Request-ID: both are per request and are set fresh on every replay.
type snapshot struct {
	status  int
	headers http.Header
	body    []byte
}

// teeWriter copies the body into buf while passing it through to the client.
type teeWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GETs from store, keyed by request URI. The router
// mounts it on /menu only, since the catalog is fixed for the life of the
// process; table routes change on every order and must not be cached.
// Non-GET requests and non-2xx responses pass through untouched.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, found := store.Get(key); found {
			snap := v.(snapshot)
			h := c.Writer.Header()
			for k, vals := range snap.headers {
				h[k] = vals
			}
			h.Set(CacheStatusHeader, "HIT")
			c.Writer.WriteHeader(snap.status)
			c.Writer.Write(snap.body)
			c.Abort()
			return
		}

		tw := &teeWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = tw
		c.Writer.Header().Set(CacheStatusHeader, "MISS")

		c.Next()

		status := tw.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		// The request id belongs to the request that filled the entry; a
		// replayed copy would hand every later caller that same id.
		headers := tw.Header().Clone()
		headers.Del(CacheStatusHeader)
		headers.Del(RequestIDHeader)
		store.Set(key, snapshot{status: status, headers: headers, body: tw.buf.Bytes()}, ttl)
	}
}
