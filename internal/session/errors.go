package session

import "errors"

var (
	// ErrDuplicateBookmark indicates the repository is already bookmarked.
	ErrDuplicateBookmark = errors.New("session: repository already bookmarked")

	// ErrBookmarkNotFound indicates no bookmark exists for the repository id.
	ErrBookmarkNotFound = errors.New("session: bookmark not found")
)
