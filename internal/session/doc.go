// Package session owns in-memory per-user session state.
//
// A session is addressed by exactly one key at a time: anonymous clients
// by their device session id ("session:<sid>"), authenticated users by
// username ("user:<name>") so every device of the same user shares one
// session. The store performs the anonymous-to-authenticated promotion
// atomically: accumulated bookmarks move to the authenticated key and
// the anonymous key is retired, exactly once per anonymous session no
// matter how many requests race on it.
//
// Sessions are deliberately ephemeral. Nothing survives a restart; an
// idle timeout plus a periodic sweep bound memory.
package session
