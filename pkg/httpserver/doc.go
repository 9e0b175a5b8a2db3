// Package httpserver wraps net/http.Server with graceful shutdown.
//
// Run blocks until the context is canceled, an interrupt signal arrives, or
// the listener fails; in the first two cases the server drains in-flight
// requests within the configured shutdown timeout.
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
