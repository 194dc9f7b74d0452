package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/webtoon-api/errors"
)

func newRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	engine := gin.New()
	NewHandler(f.svc).RegisterRoutes(engine)
	return engine, f
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	engine, f := newRouter(t)

	rr := post(engine, "/register", `{"username":"a","password":"p"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, MessageRegistered, res.Message)
	_, err := f.tokens.Verify(res.Token)
	assert.NoError(t, err)

	rr = post(engine, "/register", `{"username":"a","password":"p"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), string(apperrors.ErrCodeDuplicateIdentity))
	assert.NotContains(t, rr.Body.String(), "token")

	rr = post(engine, "/login", `{"username":"a","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), string(apperrors.ErrCodeInvalidCredentials))

	rr = post(engine, "/login", `{"username":"a","password":"p"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, MessageLoggedIn, res.Message)
}

func TestHandler_ValidationFailures(t *testing.T) {
	engine, f := newRouter(t)

	for _, body := range []string{
		``,
		`not json`,
		`{"username":"a"}`,
		`{"password":"p"}`,
		`{"username":"","password":""}`,
	} {
		for _, path := range []string{"/register", "/login"} {
			rr := post(engine, path, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "%s %q", path, body)

			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, apperrors.ErrCodeValidationFailed, resp.Error.Code, "%s %q", path, body)
		}
	}
	assert.Equal(t, 0, f.store.Len())
}
