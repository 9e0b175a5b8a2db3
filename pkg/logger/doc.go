// Package logger builds configured slog.Logger instances.
//
// It provides a small factory over log/slog with JSON and text handlers,
// environment presets, and typed attribute helpers so log keys stay
// consistent across the codebase:
//
//	log := logger.New(
//	    logger.WithDevelopment("repobook"),
//	    logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("session created", logger.Component("session"))
package logger
