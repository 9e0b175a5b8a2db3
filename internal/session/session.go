package session

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/repobook/repobook/internal/github"
)

// Session is the live, mutable working set of one user or device.
// All methods are safe for concurrent use; handlers mutate the stored
// entry directly, so there is no copy-then-write-back window.
type Session struct {
	mu         sync.RWMutex
	username   string
	bookmarks  map[int64]github.Repo
	lastAccess time.Time
}

func newSession(username string) *Session {
	return &Session{
		username:   username,
		bookmarks:  make(map[int64]github.Repo),
		lastAccess: time.Now(),
	}
}

// Username returns the owning username, empty for anonymous sessions.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) setUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// Touch updates the last access time.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
}

// LastAccess returns the time of the last successful resolution or mutation.
func (s *Session) LastAccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccess
}

// IdleExpired reports whether the session has been untouched longer than timeout.
func (s *Session) IdleExpired(timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.lastAccess) > timeout
}

// Bookmarks returns a snapshot of the bookmark set ordered by repository id.
func (s *Session) Bookmarks() []github.Repo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]github.Repo, 0, len(s.bookmarks))
	for _, repo := range s.bookmarks {
		repos = append(repos, repo)
	}
	slices.SortFunc(repos, func(a, b github.Repo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return repos
}

// AddBookmark stores the repository, failing with ErrDuplicateBookmark
// when its id is already present.
func (s *Session) AddBookmark(repo github.Repo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookmarks[repo.ID]; exists {
		return ErrDuplicateBookmark
	}
	s.bookmarks[repo.ID] = repo
	s.lastAccess = time.Now()
	return nil
}

// RemoveBookmark deletes the bookmark for the repository id, failing with
// ErrBookmarkNotFound when absent.
func (s *Session) RemoveBookmark(repoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookmarks[repoID]; !exists {
		return ErrBookmarkNotFound
	}
	delete(s.bookmarks, repoID)
	s.lastAccess = time.Now()
	return nil
}

// copyBookmarks returns a detached copy of the bookmark map, used when
// promoting an anonymous session.
func (s *Session) copyBookmarks() map[int64]github.Repo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookmarks := make(map[int64]github.Repo, len(s.bookmarks))
	for id, repo := range s.bookmarks {
		bookmarks[id] = repo
	}
	return bookmarks
}
