package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/repobook/repobook/pkg/logger"
)

const (
	userKeyPrefix = "user:"
	anonKeyPrefix = "session:"
)

// sessionKey derives the store key: authenticated sessions collapse onto
// the username regardless of device, anonymous sessions stay per-device.
func sessionKey(sessionID, username string) string {
	if username != "" {
		return userKeyPrefix + username
	}
	return anonKeyPrefix + sessionID
}

// Store is the single source of truth for in-memory session state.
// It is safe for concurrent use; the store mutex makes every check-then-act
// sequence, including the two-key promotion, atomic.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	idleTimeout time.Duration
	log         *slog.Logger

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore creates a session store and, when cfg.SweepInterval > 0, starts
// the background expiry sweep. Call Close on shutdown to stop it.
func NewStore(cfg Config, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	store := &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: cfg.IdleTimeout,
		log:         log,
		done:        make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		store.ticker = time.NewTicker(cfg.SweepInterval)
		go store.sweepLoop()
	}

	return store
}

// GetOrCreate resolves the live session for the given identity, creating
// one when absent and refreshing its last access time.
//
// When username is non-empty and an anonymous session still exists for the
// same sessionID, that session is promoted: its bookmarks move to a new
// entry under the user key and the anonymous key is retired. The whole
// sequence runs under the store lock, so concurrent first-authenticated
// requests resolve to a single winner; losers observe the already-promoted
// session through the ordinary get-or-insert path below.
func (st *Store) GetOrCreate(sessionID, username string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := sessionKey(sessionID, username)

	if username != "" {
		anonKey := sessionKey(sessionID, "")
		if anon, ok := st.sessions[anonKey]; ok && anon.Username() == "" {
			promoted := newSession(username)
			promoted.bookmarks = anon.copyBookmarks()
			delete(st.sessions, anonKey)
			st.sessions[key] = promoted

			st.log.Info("anonymous session promoted",
				logger.Username(username),
				slog.Int("bookmarks", len(promoted.bookmarks)),
				logger.Component("session"))
			return promoted
		}
	}

	if existing, ok := st.sessions[key]; ok {
		if existing.Username() != username {
			existing.setUsername(username)
		}
		existing.Touch()
		return existing
	}

	created := newSession(username)
	st.sessions[key] = created
	return created
}

// Get is a lookup-only resolution: it never creates a session, and an
// idle-expired entry is evicted and reported as a miss. This asymmetry
// with GetOrCreate is deliberate; cold read paths must observe absence
// rather than conjure empty state.
func (st *Store) Get(sessionID, username string) (*Session, bool) {
	key := sessionKey(sessionID, username)

	st.mu.RLock()
	sess, ok := st.sessions[key]
	st.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if sess.IdleExpired(st.idleTimeout) {
		st.mu.Lock()
		// Another goroutine may have replaced the entry in between.
		if current, ok := st.sessions[key]; ok && current == sess {
			delete(st.sessions, key)
		}
		st.mu.Unlock()
		return nil, false
	}

	sess.Touch()
	return sess, true
}

// Remove explicitly evicts the session for the given identity.
func (st *Store) Remove(sessionID, username string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionKey(sessionID, username))
}

// DeleteExpired evicts every idle-expired session.
func (st *Store) DeleteExpired() {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for key, sess := range st.sessions {
		if sess.IdleExpired(st.idleTimeout) {
			delete(st.sessions, key)
			evicted++
		}
	}

	if evicted > 0 {
		st.log.Debug("expired sessions evicted",
			slog.Int("count", evicted),
			slog.Int("remaining", len(st.sessions)),
			logger.Component("session"))
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the background sweep. Safe for repeated calls.
func (st *Store) Close() error {
	st.closeOnce.Do(func() {
		if st.ticker != nil {
			st.ticker.Stop()
		}
		close(st.done)
	})
	return nil
}

func (st *Store) sweepLoop() {
	for {
		select {
		case <-st.ticker.C:
			st.DeleteExpired()
		case <-st.done:
			return
		}
	}
}
