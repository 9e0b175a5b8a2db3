// Package handler implements the HTTP surface: login, bookmark management,
// repository search, and the routing/middleware stack that ties session
// resolution and bearer verification together.
package handler
