package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/service/permission"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString(ContextRequestID))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))

	// A caller-supplied ID is preserved.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "trace-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get(HeaderXRequestID))
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})
	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestResponseCacheServesSecondRead(t *testing.T) {
	rc := NewResponseCache(time.Minute)
	hits := 0
	r := gin.New()
	r.GET("/slots", rc.Cache(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"slots": []string{"09:00"}})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slots?date=2024-06-10", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 1, hits)
}

type staticVerifier struct {
	actor permission.Actor
	err   error
}

func (v staticVerifier) Verify(string) (permission.Actor, error) {
	return v.actor, v.err
}

func TestAuthenticateStoresActor(t *testing.T) {
	actor := permission.Actor{Role: permission.RoleAdmin}
	mw := NewAuthMiddleware(staticVerifier{actor: actor})

	r := gin.New()
	r.Use(mw.Authenticate())
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, actor, ActorFrom(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(staticVerifier{})

	r := gin.New()
	r.Use(mw.Authenticate())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
