package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/docsession/core/logger"
)

// loggingStore wraps a Store and records the outcome of every call.
type loggingStore[Data any] struct {
	next Store[Data]
	log  *slog.Logger
}

// WithLogging wraps store so that each operation is logged with its latency.
// Successful calls and not-found lookups are logged at debug level, failures at error level.
// Errors are returned unchanged.
//
// Example:
//
//	store, _ := mongostore.New[Cart](coll)
//	logged := session.WithLogging[Cart](store, slog.Default())
func WithLogging[Data any](store Store[Data], log *slog.Logger) Store[Data] {
	if log == nil {
		log = slog.Default()
	}
	return &loggingStore[Data]{
		next: store,
		log:  log.With(logger.Component("session_store")),
	}
}

func (s *loggingStore[Data]) Get(ctx context.Context, sid string) (Data, error) {
	start := time.Now()
	data, err := s.next.Get(ctx, sid)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.DebugContext(ctx, "session lookup",
			logger.Operation("get"), logger.SessionID(sid), logger.Found(false), logger.Elapsed(start))
	case err != nil:
		s.fail(ctx, "get", sid, start, err)
	default:
		s.log.DebugContext(ctx, "session lookup",
			logger.Operation("get"), logger.SessionID(sid), logger.Found(true), logger.Elapsed(start))
	}
	return data, err
}

func (s *loggingStore[Data]) Set(ctx context.Context, sid string, data Data) error {
	start := time.Now()
	err := s.next.Set(ctx, sid, data)
	s.done(ctx, "set", sid, start, err)
	return err
}

func (s *loggingStore[Data]) Destroy(ctx context.Context, sid string) error {
	start := time.Now()
	err := s.next.Destroy(ctx, sid)
	s.done(ctx, "destroy", sid, start, err)
	return err
}

func (s *loggingStore[Data]) Length(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.next.Length(ctx)
	if err != nil {
		s.fail(ctx, "length", "", start, err)
		return n, err
	}
	s.log.DebugContext(ctx, "session store call",
		logger.Operation("length"), logger.Count("sessions", n), logger.Elapsed(start))
	return n, nil
}

func (s *loggingStore[Data]) Clear(ctx context.Context) error {
	start := time.Now()
	err := s.next.Clear(ctx)
	s.done(ctx, "clear", "", start, err)
	return err
}

func (s *loggingStore[Data]) done(ctx context.Context, op, sid string, start time.Time, err error) {
	if err != nil {
		s.fail(ctx, op, sid, start, err)
		return
	}
	s.log.DebugContext(ctx, "session store call",
		logger.Operation(op), logger.SessionID(sid), logger.Elapsed(start))
}

func (s *loggingStore[Data]) fail(ctx context.Context, op, sid string, start time.Time, err error) {
	s.log.ErrorContext(ctx, "session store call failed",
		logger.Operation(op), logger.SessionID(sid), logger.Elapsed(start), logger.Error(err))
}
