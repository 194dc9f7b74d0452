package webtoon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/webtoon-api/auth/token"
	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
	"github.com/kbukum/webtoon-api/server"
	"github.com/kbukum/webtoon-api/server/middleware"
)

type harness struct {
	engine *gin.Engine
	repo   *GormRepository
	bearer string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{Secret: "webtoon-test-secret-0123"})
	require.NoError(t, err)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	repo := newRepo(t)
	engine := gin.New()
	NewHandler(repo, logger.NewNop()).RegisterRoutes(engine, middleware.Auth(tokens))
	return &harness{engine: engine, repo: repo, bearer: "Bearer " + tok}
}

func (h *harness) do(method, path, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	h.engine.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error.Code
}

func TestHandler_CreateGetDelete(t *testing.T) {
	h := newHarness(t)

	rr := h.do(http.MethodPost, "/webtoons", `{"title":"X","description":"Y","characters":"Alice, Bob"}`, h.bearer)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created Webtoon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "X", created.Title)
	assert.Equal(t, "alice", created.CreatedBy)

	rr = h.do(http.MethodGet, "/webtoons/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var fetched Webtoon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Alice, Bob", fetched.Characters)

	rr = h.do(http.MethodGet, "/webtoons", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []Webtoon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rr = h.do(http.MethodDelete, "/webtoons/"+created.ID, "", h.bearer)
	require.Equal(t, http.StatusOK, rr.Code)
	var msg server.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	assert.Equal(t, MessageDeleted, msg.Message)

	rr = h.do(http.MethodDelete, "/webtoons/"+created.ID, "", h.bearer)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, rr))
}

func TestHandler_EmptyListIsArray(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodGet, "/webtoons", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandler_GetMissing(t *testing.T) {
	h := newHarness(t)
	for _, id := range []string{uuid.NewString(), "nonexistent"} {
		rr := h.do(http.MethodGet, "/webtoons/"+id, "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code, id)
		assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, rr), id)
	}
}

func TestHandler_MutationsRequireAuth(t *testing.T) {
	h := newHarness(t)
	existing := &Webtoon{Title: "keep", Description: "me"}
	require.NoError(t, h.repo.Create(context.Background(), existing))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		header string
		want   apperrors.ErrorCode
	}{
		{"create without header", http.MethodPost, "/webtoons", `{"title":"X","description":"Y"}`, "", apperrors.ErrCodeMalformedCredential},
		{"create with bad token", http.MethodPost, "/webtoons", `{"title":"X","description":"Y"}`, "Bearer nope", apperrors.ErrCodeInvalidToken},
		{"delete without header", http.MethodDelete, "/webtoons/" + existing.ID, "", "", apperrors.ErrCodeMalformedCredential},
		{"delete with wrong scheme", http.MethodDelete, "/webtoons/" + existing.ID, "", "Token abc", apperrors.ErrCodeMalformedCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := h.do(tt.method, tt.path, tt.body, tt.header)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, errorCode(t, rr))
		})
	}

	all, err := h.repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1, "rejected requests must not change the store")
}

func TestHandler_CreateWithoutCharacters(t *testing.T) {
	h := newHarness(t)

	rr := h.do(http.MethodPost, "/webtoons", `{"title":"X","description":"Y"}`, h.bearer)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created Webtoon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Empty(t, created.Characters)

	got, err := h.repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Y", got.Description)
	assert.Empty(t, got.Characters)
}

func TestHandler_CreateValidation(t *testing.T) {
	h := newHarness(t)
	for _, body := range []string{
		`{"title":"X"}`,
		`{"description":"Y"}`,
		`{"title":"","description":"Y"}`,
		`{"title":"X","description":"Y","characters":["Kim"]}`,
		`{`,
	} {
		rr := h.do(http.MethodPost, "/webtoons", body, h.bearer)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, errorCode(t, rr), body)
	}
}

type brokenRepo struct{ Repository }

func (brokenRepo) List(context.Context) ([]Webtoon, error) {
	return nil, errors.New("connection reset")
}

func TestHandler_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(brokenRepo{}, logger.NewNop()).RegisterRoutes(engine, func(c *gin.Context) { c.Next() })

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/webtoons", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apperrors.ErrCodeStoreFailure, errorCode(t, rr))
	assert.NotContains(t, rr.Body.String(), "connection reset")
}
