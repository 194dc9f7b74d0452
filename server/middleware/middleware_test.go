package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/webtoon-api/auth/authctx"
	"github.com/kbukum/webtoon-api/auth/token"
	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
	"github.com/kbukum/webtoon-api/ratelimit"
	"github.com/kbukum/webtoon-api/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorBody {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_Panic(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.Recovery(logger.NewNop()))
	engine.GET("/boom", func(*gin.Context) { panic("test panic") })

	rr := serve(engine, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, apperrors.ErrCodeInternal, body.Code)
	assert.NotContains(t, rr.Body.String(), "test panic")
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestIDFromContext(c.Request.Context()))
	})

	rr := serve(engine, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	generated := rr.Header().Get(middleware.HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	rr = serve(engine, req)
	assert.Equal(t, "abc-123", rr.Header().Get(middleware.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, strings.Repeat("x", 500))
	rr = serve(engine, req)
	assert.Len(t, rr.Header().Get(middleware.HeaderRequestID), 36)
}

// ---------------------------------------------------------------------------
// RateLimit
// ---------------------------------------------------------------------------

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func newLimiter(t *testing.T, max int, clock *fakeClock) *ratelimit.Limiter {
	t.Helper()
	lim := ratelimit.New(ratelimit.Config{MaxRequests: max}, ratelimit.WithClock(clock.Now), ratelimit.WithoutJanitor())
	t.Cleanup(func() { _ = lim.Close() })
	return lim
}

func requestFrom(method, target, addr string) *http.Request {
	req := httptest.NewRequest(method, target, http.NoBody)
	req.RemoteAddr = addr
	return req
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	calls := 0

	engine := gin.New()
	engine.Use(middleware.RateLimit(newLimiter(t, 3, clock)))
	engine.GET("/", func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rr := serve(engine, requestFrom(http.MethodGet, "/", "10.0.0.1:1234"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "3", rr.Header().Get(middleware.HeaderRateLimitLimit))
		assert.Equal(t, []string{"2", "1", "0"}[i], rr.Header().Get(middleware.HeaderRateLimitRemaining))
	}

	rr := serve(engine, requestFrom(http.MethodGet, "/", "10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, apperrors.ErrCodeTooManyRequests, decodeError(t, rr).Code)
	assert.Equal(t, "900", rr.Header().Get(middleware.HeaderRetryAfter))
	assert.Equal(t, "1700000900", rr.Header().Get(middleware.HeaderRateLimitReset))
	assert.Equal(t, 3, calls, "rejected request must not reach the handler")

	rr = serve(engine, requestFrom(http.MethodGet, "/", "10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, rr.Code, "other origins are unaffected")
}

func TestRateLimit_RunsBeforeAuth(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	tokens := newTokenService(t)

	engine := gin.New()
	engine.Use(middleware.RateLimit(newLimiter(t, 2, clock)))
	engine.POST("/protected", middleware.Auth(tokens), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, serve(engine, requestFrom(http.MethodPost, "/protected", "10.0.0.9:1")).Code)
	}
	assert.Equal(t, []int{400, 400, 429, 429}, codes)
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func newTokenService(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Config{Secret: "middleware-test-secret-0123"})
	require.NoError(t, err)
	return svc
}

func TestAuth(t *testing.T) {
	tokens := newTokenService(t)
	valid, err := tokens.Issue("alice")
	require.NoError(t, err)

	other, err := token.NewService(token.Config{Secret: "some-other-signing-secret"})
	require.NoError(t, err)
	foreign, err := other.Issue("alice")
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/me", middleware.Auth(tokens), func(c *gin.Context) {
		p, _ := authctx.PrincipalFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"subject": p.Subject, "gin": c.GetString(middleware.ContextKeySubject)})
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  apperrors.ErrorCode
	}{
		{"missing header", "", http.StatusBadRequest, apperrors.ErrCodeMalformedCredential},
		{"wrong scheme", "Basic " + valid, http.StatusBadRequest, apperrors.ErrCodeMalformedCredential},
		{"lowercase scheme", "bearer " + valid, http.StatusBadRequest, apperrors.ErrCodeMalformedCredential},
		{"scheme only", "Bearer", http.StatusBadRequest, apperrors.ErrCodeMalformedCredential},
		{"garbage token", "Bearer not-a-token", http.StatusBadRequest, apperrors.ErrCodeInvalidToken},
		{"foreign signature", "Bearer " + foreign, http.StatusBadRequest, apperrors.ErrCodeInvalidToken},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := serve(engine, req)

			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, rr).Code)
				return
			}
			assert.JSONEq(t, `{"subject":"alice","gin":"alice"}`, rr.Body.String())
		})
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{"GET", "POST"},
	}
	engine := gin.New()
	engine.Use(middleware.CORS(cfg))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", http.NoBody)
	req.Header.Set("Origin", "https://example.com")
	rr := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rr.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	rr = serve(engine, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

// ---------------------------------------------------------------------------
// BodySizeLimit
// ---------------------------------------------------------------------------

func TestBodySizeLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.BodySizeLimit("8B"))
	engine.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	rr := serve(engine, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(engine, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_OmitsCredentials(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.RequestLogger(log))
	engine.GET("/webtoons", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/webtoons", http.NoBody)
	req.Header.Set("Authorization", "Bearer super-secret-token")
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	serve(engine, req)
	serve(engine, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "health checks are not logged")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/webtoons", entry["path"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.Contains(t, entry, logger.FieldDuration)
	assert.Equal(t, "req-42", entry[logger.FieldRequestID])
	assert.EqualValues(t, http.StatusUnauthorized, entry[logger.FieldStatus])
	assert.NotContains(t, buf.String(), "super-secret-token")
}
