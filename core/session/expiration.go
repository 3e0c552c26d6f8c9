package session

import "time"

// IsExpired reports whether a record last active at lastActivity is expired at now.
// A zero lastActivity means the record never carried a timestamp and is expired.
// A record is still valid at exactly lastActivity+ttl.
func IsExpired(lastActivity, now time.Time, ttl time.Duration) bool {
	if lastActivity.IsZero() {
		return true
	}
	return now.After(lastActivity.Add(ttl))
}
