package session

import "errors"

var (
	// ErrNotFound is returned by Get when no live record exists for the session id.
	// Expired records produce the same error.
	ErrNotFound = errors.New("session not found")
	// ErrNilCollection is returned when a document store is constructed without a collection.
	ErrNilCollection = errors.New("session store requires a collection")
	// ErrNilCodec is returned when a nil codec is supplied.
	ErrNilCodec = errors.New("session store requires a codec")
	// ErrInvalidConfig is returned when the store configuration fails validation.
	ErrInvalidConfig = errors.New("invalid session store config")
	// ErrEncode is returned when session data cannot be serialized.
	ErrEncode = errors.New("failed to encode session data")
	// ErrDecode is returned when stored session data cannot be deserialized.
	ErrDecode = errors.New("failed to decode session data")
)
