package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"wtwr-api/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CallerID(c), "rid": c.GetString(KeyRequestID)})
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFixedCaller(t *testing.T) {
	r := newEngine(FixedCaller("6863bbc8eb627a884f678c38"))
	w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"6863bbc8eb627a884f678c38","rid":""}`, w.Body.String())
}

func TestJWTCaller(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "wtwr-api", TTL: time.Hour}
	r := newEngine(JWTCaller(j))

	w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authorization required"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	tok, err := j.Issue("u-1")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"u-1"`)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	rid := w.Header().Get(KeyRequestID)
	assert.Len(t, rid, 36)
	assert.Contains(t, w.Body.String(), rid)

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(KeyRequestID, "abc")
	assert.Equal(t, "abc", do(r, req).Header().Get(KeyRequestID))
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(0.0001, 2))
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
	w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())
}

func TestRateLimitPerIPConcurrent(t *testing.T) {
	r := newEngine(RateLimitPerIP(0.0001, 5))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			if do(r, req).Code == http.StatusOK {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, ok)

	// 其它 IP 有独立的令牌桶
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newEngine(RequestID(), FixedCaller("u-1"), AccessLog(zap.New(core)))

	do(r, httptest.NewRequest(http.MethodGet, "/who?token=secret&q=1", nil))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/who", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "u-1", fields["uid"])
	q, ok := fields["query"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"****"}, q["token"])
	assert.Equal(t, []string{"1"}, q["q"])
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })
	w := do(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestConcurrencyLimit(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusNoContent, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}
