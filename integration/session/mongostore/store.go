package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/docsession/core/session"
)

// Compile-time check that Store implements session.Store.
var _ session.Store[any] = (*Store[any])(nil)

// Store keeps session records in a MongoDB collection whose field names come from session.Config.
// It holds no mutable state; concurrent calls are independent and races on the same id
// are settled by the database.
type Store[Data any] struct {
	coll  Collection
	cfg   session.Config
	codec session.Codec[Data]
	now   func() time.Time
}

// New builds a Store over a driver collection.
func New[Data any](coll *mongo.Collection, opts ...Option[Data]) (*Store[Data], error) {
	if coll == nil {
		return nil, session.ErrNilCollection
	}
	return NewWithCollection(Wrap(coll), opts...)
}

// NewWithCollection builds a Store over any Collection implementation.
// Returns session.ErrNilCollection, session.ErrNilCodec or session.ErrInvalidConfig on bad wiring.
func NewWithCollection[Data any](coll Collection, opts ...Option[Data]) (*Store[Data], error) {
	if coll == nil {
		return nil, session.ErrNilCollection
	}

	s := &Store[Data]{
		coll:  coll,
		cfg:   session.DefaultConfig(),
		codec: session.JSONCodec[Data]{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.codec == nil {
		return nil, session.ErrNilCodec
	}
	if s.now == nil {
		s.now = time.Now
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the field mapping and expiration in use.
func (s *Store[Data]) Config() session.Config {
	return s.cfg
}

// Get loads the record for sid. Missing records yield session.ErrNotFound.
// An expired record, or one without a data field, is deleted and also yields session.ErrNotFound;
// if that delete fails its error is returned instead.
func (s *Store[Data]) Get(ctx context.Context, sid string) (Data, error) {
	var zero Data

	var doc bson.M
	if err := s.coll.FindOne(ctx, s.filter(sid)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, session.ErrNotFound
		}
		return zero, err
	}

	raw, hasData := doc[s.cfg.DataField]
	lastActivity, _ := timeValue(doc[s.cfg.LastActivityField])

	if !hasData || raw == nil || session.IsExpired(lastActivity, s.now(), s.cfg.DefaultExpiration) {
		if err := s.Destroy(ctx, sid); err != nil {
			return zero, err
		}
		return zero, session.ErrNotFound
	}

	str, ok := raw.(string)
	if !ok {
		return zero, fmt.Errorf("%w: field %q holds %T, want string", session.ErrDecode, s.cfg.DataField, raw)
	}

	data, err := s.codec.Decode(str)
	if err != nil {
		if !errors.Is(err, session.ErrDecode) {
			err = errors.Join(session.ErrDecode, err)
		}
		return zero, err
	}
	return data, nil
}

// Set upserts the record for sid with freshly encoded data and the current time as last activity.
// Fields other than the three mapped ones are left untouched on existing documents.
func (s *Store[Data]) Set(ctx context.Context, sid string, data Data) error {
	raw, err := s.codec.Encode(data)
	if err != nil {
		if !errors.Is(err, session.ErrEncode) {
			err = errors.Join(session.ErrEncode, err)
		}
		return err
	}

	update := bson.M{
		"$set": bson.M{
			s.cfg.SessionIDField:    sid,
			s.cfg.DataField:         raw,
			s.cfg.LastActivityField: s.now(),
		},
	}
	_, err = s.coll.UpdateOne(ctx, s.filter(sid), update, options.UpdateOne().SetUpsert(true))
	return err
}

// Destroy deletes the record for sid. Deleting a missing record is not an error.
func (s *Store[Data]) Destroy(ctx context.Context, sid string) error {
	_, err := s.coll.DeleteOne(ctx, s.filter(sid))
	return err
}

// Length counts every record in the collection, expired or not.
func (s *Store[Data]) Length(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

// Clear deletes every record in the collection.
func (s *Store[Data]) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (s *Store[Data]) filter(sid string) bson.M {
	return bson.M{s.cfg.SessionIDField: sid}
}

// timeValue extracts a timestamp from a decoded BSON value.
// Anything that is not a date counts as missing.
func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	default:
		return time.Time{}, false
	}
}
