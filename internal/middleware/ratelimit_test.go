package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func setupLimitedRouter(ipLimiter *IPRateLimiter, quota *DailyQuota) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai", RateLimitMiddleware(ipLimiter, quota), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ai", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDailyQuotaExhaustion(t *testing.T) {
	r := setupLimitedRouter(NewIPRateLimiter(rate.Inf, 1), NewDailyQuota(2))

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusOK, hit(r).Code)

	w := hit(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "QUOTA_EXCEEDED")
}

func TestPerIPLimit(t *testing.T) {
	// One request per hour, burst of one: the second hit must be rejected.
	r := setupLimitedRouter(NewIPRateLimiter(rate.Every(time.Hour), 1), NewDailyQuota(100))

	assert.Equal(t, http.StatusOK, hit(r).Code)

	w := hit(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestQuotaRemaining(t *testing.T) {
	q := NewDailyQuota(3)
	require.True(t, q.Allow())
	assert.Equal(t, int64(2), q.Remaining())
}
