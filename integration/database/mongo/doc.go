// Package mongo opens the *mongo.Client that backs mongostore.
//
// New applies pool and retry settings from Config, pings the deployment and
// retries the connect+ping pair up to RetryAttempts times, so a process started
// next to a cold Atlas cluster does not fail on its first try.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err // errors.Is(err, mongo.ErrFailedToConnectToMongo)
//	}
//	defer client.Disconnect(ctx)
//
//	store, err := mongostore.New[Cart](client.Database("app").Collection("sessions"))
//
// Environment:
//
//	MONGODB_URL                 required
//	MONGODB_CONNECT_TIMEOUT     10s, per attempt
//	MONGODB_MAX_POOL_SIZE       100
//	MONGODB_MIN_POOL_SIZE       1
//	MONGODB_MAX_CONN_IDLE_TIME  300s
//	MONGODB_RETRY_WRITES        true
//	MONGODB_RETRY_READS         true
//	MONGODB_RETRY_ATTEMPTS      3
//	MONGODB_RETRY_INTERVAL      5s
//
// Healthcheck returns a probe for health.Readiness; it wraps ping failures in
// ErrHealthcheckFailed.
package mongo
