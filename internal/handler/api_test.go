package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repobook/repobook/internal/credentials"
	"github.com/repobook/repobook/internal/github"
	"github.com/repobook/repobook/internal/handler"
	"github.com/repobook/repobook/internal/session"
	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/cookie"
	"github.com/repobook/repobook/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fakeSearcher struct {
	result *github.SearchResult
	err    error

	lastQuery   string
	lastPerPage int
	lastPage    int
}

func (f *fakeSearcher) Search(_ context.Context, query string, perPage, page int) (*github.SearchResult, error) {
	f.lastQuery = query
	f.lastPerPage = perPage
	f.lastPage = page
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type testEnv struct {
	router http.Handler
	store  *session.Store
	search *fakeSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := token.NewIssuer(token.Config{
		Secret:   "test-secret-for-handlers",
		Issuer:   "repobook",
		Audience: "repobook",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	cfg := session.DefaultConfig()
	cfg.SweepInterval = 0

	store := session.NewStore(cfg, nil)
	t.Cleanup(func() { _ = store.Close() })

	search := &fakeSearcher{result: &github.SearchResult{}}

	api := handler.NewAPI(credentials.NewDefaultValidator(), issuer, search, validator.New(), nil)
	router := handler.NewRouter(api, store, cookie.New(), cfg, discardLogger())

	return &testEnv{router: router, store: store, search: search}
}

// do issues a request, carrying cookies between calls so the session id
// persists across the scenario the way a browser would.
func (e *testEnv) do(t *testing.T, method, target, bearer string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	merged := cookies
	if set := rec.Result().Cookies(); len(set) > 0 {
		merged = set
	}
	return rec, merged
}

func (e *testEnv) login(t *testing.T, username, password string, cookies []*http.Cookie) (string, []*http.Cookie) {
	t.Helper()

	rec, cookies := e.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"username": username, "password": password}, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, username, resp.Username)
	return resp.Token, cookies
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		tok, _ := env.login(t, "admin", "admin#pass#", nil)
		assert.NotEmpty(t, tok)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"username": "admin", "password": "nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", errorCode(t, rec))
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"username": "admin"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sid cookie is minted on first contact", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, cookies := env.login(t, "user1", "password123", nil)
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})
}

func TestProtectedRoutes(t *testing.T) {
	t.Parallel()

	t.Run("missing bearer token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodGet, "/bookmarks", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodGet, "/bookmarks", "not-a-jwt", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", errorCode(t, rec))
	})
}

func TestBookmarkLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tok, cookies := env.login(t, "admin", "admin#pass#", nil)

	// Fresh authenticated session starts empty.
	rec, cookies := env.do(t, http.MethodGet, "/bookmarks", tok, nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []github.Repo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	repo := github.Repo{ID: 42, Name: "go", FullName: "golang/go", StargazersCount: 120000}

	rec, cookies = env.do(t, http.MethodPost, "/bookmarks", tok, repo, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Adding the same repository twice conflicts.
	rec, cookies = env.do(t, http.MethodPost, "/bookmarks", tok, repo, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))

	rec, cookies = env.do(t, http.MethodGet, "/bookmarks", tok, nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(42), list[0].ID)

	rec, cookies = env.do(t, http.MethodDelete, "/bookmarks/42", tok, nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Deleting again is a miss.
	rec, cookies = env.do(t, http.MethodDelete, "/bookmarks/42", tok, nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/bookmarks/not-a-number", tok, nil, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tok, cookies := env.login(t, "user1", "password123", nil)

	rec, _ := env.do(t, http.MethodPost, "/bookmarks", tok, github.Repo{Name: "no-id"}, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkOwnership(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	// user1 logs in and bookmarks on their session.
	tok1, cookies := env.login(t, "user1", "password123", nil)
	rec, cookies := env.do(t, http.MethodPost, "/bookmarks", tok1,
		github.Repo{ID: 7, FullName: "golang/go"}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// A token for a different account cannot read that session's bookmarks:
	// the bearer hint resolves user2's own session, which is empty.
	tok2, cookies2 := env.login(t, "user2", "secret@2024", nil)
	rec, _ = env.do(t, http.MethodGet, "/bookmarks", tok2, nil, cookies2)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []github.Repo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	// user1 still sees their bookmark.
	rec, _ = env.do(t, http.MethodGet, "/bookmarks", tok1, nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestAnonymousBookmarksSurviveLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	// Browse anonymously first so a session exists under the sid cookie.
	rec, cookies := env.do(t, http.MethodGet, "/health", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cookies, 1)

	sid := cookies[0].Value
	anon, ok := env.store.Get(sid, "")
	require.True(t, ok)
	require.NoError(t, anon.AddBookmark(github.Repo{ID: 99, FullName: "stretchr/testify"}))

	// Logging in with the same cookie promotes the anonymous session.
	tok, cookies := env.login(t, "admin", "admin#pass#", cookies)

	rec, _ = env.do(t, http.MethodGet, "/bookmarks", tok, nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []github.Repo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(99), list[0].ID)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("happy path forwards query and pagination", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.search.result = &github.SearchResult{
			TotalCount: 1,
			Items:      []github.Repo{{ID: 1, FullName: "golang/go"}},
		}

		tok, cookies := env.login(t, "admin", "admin#pass#", nil)
		rec, _ := env.do(t, http.MethodGet, "/search?query=golang&perPage=10&page=2", tok, nil, cookies)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "golang", env.search.lastQuery)
		assert.Equal(t, 10, env.search.lastPerPage)
		assert.Equal(t, 2, env.search.lastPage)

		var result github.SearchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 1, result.TotalCount)
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		tok, cookies := env.login(t, "admin", "admin#pass#", nil)
		rec, _ := env.do(t, http.MethodGet, "/search?query=%20%20", tok, nil, cookies)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out of range pagination falls back to defaults", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		tok, cookies := env.login(t, "admin", "admin#pass#", nil)
		rec, _ := env.do(t, http.MethodGet, "/search?query=go&perPage=500&page=0", tok, nil, cookies)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 30, env.search.lastPerPage)
		assert.Equal(t, 1, env.search.lastPage)
	})

	t.Run("rate limited upstream maps to 429", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.search.err = github.ErrRateLimited

		tok, cookies := env.login(t, "admin", "admin#pass#", nil)
		rec, _ := env.do(t, http.MethodGet, "/search?query=go", tok, nil, cookies)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "too_many_requests", errorCode(t, rec))
	})

	t.Run("other upstream failures map to 500", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.search.err = fmt.Errorf("%w: status 502", github.ErrUpstream)

		tok, cookies := env.login(t, "admin", "admin#pass#", nil)
		rec, _ := env.do(t, http.MethodGet, "/search?query=go", tok, nil, cookies)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/nope", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}
