// Package health runs dependency probes for the maintenance CLI and for any
// service that embeds the session stores.
//
// A probe is a plain func(context.Context) error, which is exactly what
// mongo.Healthcheck and redis.Healthcheck return:
//
//	status, err := health.Readiness(ctx, log, mongo.Healthcheck(client))
//	if err != nil {
//		// status == health.StatusNotReady, errors.Is(err, health.ErrNotReady)
//	}
package health
