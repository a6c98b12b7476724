package mw

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCache_ServesRepeatedGETFromStore(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/menu", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})

	first := serve(r, http.MethodGet, "/menu", nil)
	second := serve(r, http.MethodGet, "/menu", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "MISS", first.Header().Get(CacheStatusHeader))
	assert.Equal(t, "HIT", second.Header().Get(CacheStatusHeader))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"calls":1}`, second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
}

func TestCache_HitKeepsOwnRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []int{}})
	})

	first := serve(r, http.MethodGet, "/menu", http.Header{RequestIDHeader: []string{"req-1"}})
	second := serve(r, http.MethodGet, "/menu", http.Header{RequestIDHeader: []string{"req-2"}})

	require.Equal(t, "HIT", second.Header().Get(CacheStatusHeader))
	assert.Equal(t, "req-1", first.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-2", second.Header().Get(RequestIDHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCache_SkipsErrorsAndOtherMethods(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	handler := func(c *gin.Context) {
		calls++
		c.String(http.StatusInternalServerError, "boom")
	}
	r.GET("/fail", handler)
	r.POST("/fail", handler)

	serve(r, http.MethodGet, "/fail", nil)
	serve(r, http.MethodGet, "/fail", nil)
	serve(r, http.MethodPost, "/fail", nil)

	assert.Equal(t, 3, calls)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.001), 2, "X-Real-IP"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	alice := http.Header{"X-Real-Ip": []string{"10.0.0.1"}}
	bob := http.Header{"X-Real-Ip": []string{"10.0.0.2"}}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", alice).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", alice).Code)

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", bob).Code)
}

func TestClientRateLimiter_SameBucketPerKey(t *testing.T) {
	l := NewClientRateLimiter(rate.Limit(1), 1)

	var wg sync.WaitGroup
	got := make([]*rate.Limiter, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = l.Limiter("k")
		}(i)
	}
	wg.Wait()

	for _, lim := range got {
		assert.Same(t, got[0], lim)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/", nil)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)

	w = serve(r, http.MethodGet, "/", http.Header{RequestIDHeader: []string{"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}

type observation struct {
	method, route, status string
}

type fakeObserver struct {
	seen []observation
}

func (f *fakeObserver) ObserveRequest(method, route, status string, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/tables/:table_id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/tables/7", nil)
	serve(r, http.MethodGet, "/nowhere", nil)

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{"GET", "/tables/:table_id", "200"}, obs.seen[0])
	assert.Equal(t, observation{"GET", "unmatched", "404"}, obs.seen[1])
}
