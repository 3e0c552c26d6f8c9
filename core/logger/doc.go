// Package logger provides structured logging utilities built on Go's standard slog package.
//
// It offers a small factory for JSON or text loggers and a set of attribute helpers
// for the session store domain. Helpers follow the empty Attr pattern: passing a nil
// error or an empty identifier yields an Attr that slog drops, so call sites never
// need nil checks.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/docsession/core/logger"
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//	)
//
//	log.Info("session loaded",
//		logger.Component("mongostore"),
//		logger.Operation("get"),
//		logger.SessionID(sid),
//		logger.Error(err),
//	)
package logger
