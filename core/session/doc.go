// Package session defines the storage contract used by session middleware and the
// pieces shared by its implementations: field-name configuration, the data codec
// and the lazy expiration policy.
//
// # Store Contract
//
// A Store[Data] offers five operations:
//
//   - Get(ctx, sid): load and decode session data; expired records are deleted and reported as ErrNotFound
//   - Set(ctx, sid, data): upsert the record and refresh its last activity time
//   - Destroy(ctx, sid): delete the record; deleting a missing record succeeds
//   - Length(ctx): count all records, including expired ones not yet cleaned up
//   - Clear(ctx): delete all records
//
// Implementations live under integration/session (MongoDB, Redis). They do not log,
// retry or cache; store errors reach the caller unchanged. Wrap a store with
// WithLogging to record call outcomes.
//
// # Configuration
//
// Config maps the three record properties onto document field names:
//
//	cfg, err := session.NewConfig(
//		session.WithSessionIDField("sessionId"),
//		session.WithDefaultExpiration(2*time.Hour),
//	)
//
// Defaults are "sid", "data", "lastActivity" and a 24 hour expiration. Configuration
// can also be read from SESSION_* environment variables (ConfigFromEnv) or from a YAML
// document (DecodeConfig); the YAML decoder rejects unknown keys.
//
// Config.UpdateLastActivityOnRead is accepted but has no effect: last activity is
// refreshed by Set only. Get never writes to the store except to remove an expired record.
//
// # Expiration
//
// A record is expired when its last activity timestamp is missing or when the current
// time is after lastActivity + DefaultExpiration. Expiration is enforced lazily on Get;
// nothing sweeps the store in the background.
//
// # Serialization
//
// Session data is stored as a string produced by a Codec. JSONCodec is the default.
// CodecFuncs adapts a plain encode/decode function pair.
package session
