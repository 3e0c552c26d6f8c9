package health

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/docsession/core/logger"
)

// Status values reported by Readiness.
const (
	StatusReady    = "READY"
	StatusNotReady = "NOT_READY"
)

// ErrNotReady is returned when at least one dependency check fails.
var ErrNotReady = errors.New("service dependencies are not ready")

// Check is a dependency probe, e.g. mongo.Healthcheck(client).
type Check func(context.Context) error

// Readiness runs every check in order and reports StatusReady when all pass.
// Failures are logged together; the returned error joins ErrNotReady with all failures.
//
// Example:
//
//	status, err := health.Readiness(ctx, log,
//		mongo.Healthcheck(mongoClient),
//		redis.Healthcheck(redisClient),
//	)
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) (string, error) {
	var errs []error
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		log.ErrorContext(ctx, "Readiness check failed",
			logger.Count("failed", int64(len(errs))),
			logger.Errors(errs...),
		)
		return StatusNotReady, errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return StatusReady, nil
}
