// Package cookie provides a small cookie manager with per-call overrides.
//
// A Manager carries default attributes (path, HttpOnly, SameSite, ...) that
// every Set call inherits; individual calls override them with functional
// options:
//
//	mgr := cookie.New(cookie.WithSecure(true))
//	_ = mgr.Set(w, "sid", id, cookie.WithMaxAge(3600))
//	val, err := mgr.Get(r, "sid")
//	mgr.Delete(w, "sid")
package cookie
