package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTokenBucketAllow(t *testing.T) {
	// 容量为3的桶，前3次请求放行，第4次拒绝
	tb := NewTokenBucket(1, 3)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("第%d次请求应该放行", i+1)
		}
	}
	if tb.Allow() {
		t.Error("超过容量的请求应该被拒绝")
	}
}

func TestTokenBucketRefill(t *testing.T) {
	// 每秒100个令牌，耗尽后稍等即可恢复
	tb := NewTokenBucket(100, 1)
	if !tb.Allow() {
		t.Fatal("第一次请求应该放行")
	}
	if tb.Allow() {
		t.Fatal("令牌耗尽后应该被拒绝")
	}

	time.Sleep(20 * time.Millisecond)
	if !tb.Allow() {
		t.Error("补充令牌后应该放行")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimiter(RateLimiterConfig{
		Rate:       0.001,
		Burst:      2,
		ExpiryTime: time.Minute,
	}))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		r.ServeHTTP(w, req)
		return w.Code
	}

	// 突发容量内的请求放行
	for i := 0; i < 2; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("第%d次请求状态码 = %d, 期望 200", i+1, code)
		}
	}

	// 超过突发容量返回429
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("超限请求状态码 = %d, 期望 429", code)
	}
}
