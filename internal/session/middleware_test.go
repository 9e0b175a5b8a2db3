package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repobook/repobook/internal/session"
	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/cookie"
)

func issueToken(t *testing.T, username string) string {
	t.Helper()
	iss, err := token.NewIssuer(token.Config{
		Secret:   "test-signing-secret-at-least-32-chars",
		Issuer:   "repobook-test",
		Audience: "repobook-test",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	raw, err := iss.Issue(username)
	require.NoError(t, err)
	return raw
}

func TestMiddleware(t *testing.T) {
	newHandler := func(t *testing.T, store *session.Store) (http.Handler, func() *session.Session) {
		t.Helper()

		iss, err := token.NewIssuer(token.Config{
			Secret:   "test-signing-secret-at-least-32-chars",
			Issuer:   "repobook-test",
			Audience: "repobook-test",
			TTL:      time.Hour,
		})
		require.NoError(t, err)

		cfg := session.DefaultConfig()
		cfg.SweepInterval = 0

		var captured *session.Session
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = session.MustFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := session.Middleware(store, cookie.New(), iss.SubjectHint, cfg, nil)(inner)
		return handler, func() *session.Session { return captured }
	}

	t.Run("mints sid cookie when absent", func(t *testing.T) {
		store := newStore(t, session.DefaultConfig())
		handler, captured := newHandler(t, store)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotNil(t, captured())
		assert.Empty(t, captured().Username())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("reuses session across requests with same cookie", func(t *testing.T) {
		store := newStore(t, session.DefaultConfig())
		handler, captured := newHandler(t, store)

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
		first := captured()

		r2 := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w1.Result().Cookies() {
			r2.AddCookie(c)
		}
		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, r2)

		assert.Same(t, first, captured())
		assert.Empty(t, w2.Result().Cookies(), "no new cookie when one exists")
	})

	t.Run("bearer hint promotes anonymous session", func(t *testing.T) {
		store := newStore(t, session.DefaultConfig())
		handler, captured := newHandler(t, store)

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, captured().AddBookmark(repo(1, "a")))

		r2 := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w1.Result().Cookies() {
			r2.AddCookie(c)
		}
		r2.Header.Set("Authorization", "Bearer "+issueToken(t, "alice"))
		handler.ServeHTTP(httptest.NewRecorder(), r2)

		assert.Equal(t, "alice", captured().Username())
		assert.Len(t, captured().Bookmarks(), 1)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("malformed bearer token is swallowed", func(t *testing.T) {
		store := newStore(t, session.DefaultConfig())
		handler, captured := newHandler(t, store)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured())
		assert.Empty(t, captured().Username())
	})

	t.Run("verified identity in context wins over hint", func(t *testing.T) {
		store := newStore(t, session.DefaultConfig())
		handler, captured := newHandler(t, store)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+issueToken(t, "mallory"))
		r = r.WithContext(token.WithIdentity(r.Context(), "alice"))
		handler.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "alice", captured().Username())
	})
}
