package mongostore_test

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/docsession/integration/session/mongostore"
)

var _ mongostore.Collection = (*fakeCollection)(nil)

// fakeCollection is an in-memory mongostore.Collection supporting equality filters and $set updates.
type fakeCollection struct {
	mu    sync.Mutex
	docs  []bson.M
	calls map[string]int

	findErr       error
	updateErr     error
	deleteErr     error
	countErr      error
	deleteManyErr error
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{calls: make(map[string]int)}
}

func (c *fakeCollection) FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) mongostore.SingleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["FindOne"]++

	if c.findErr != nil {
		return fakeSingleResult{err: c.findErr}
	}
	for _, doc := range c.docs {
		if matches(doc, filter) {
			return fakeSingleResult{doc: cloneDoc(doc)}
		}
	}
	return fakeSingleResult{err: mongo.ErrNoDocuments}
}

func (c *fakeCollection) UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["UpdateOne"]++

	if c.updateErr != nil {
		return nil, c.updateErr
	}

	set, _ := update.(bson.M)["$set"].(bson.M)
	for _, doc := range c.docs {
		if matches(doc, filter) {
			for k, v := range set {
				doc[k] = v
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}

	var o options.UpdateOneOptions
	for _, l := range opts {
		for _, fn := range l.List() {
			_ = fn(&o)
		}
	}
	if o.Upsert == nil || !*o.Upsert {
		return &mongo.UpdateResult{}, nil
	}

	doc := bson.M{"_id": bson.NewObjectID()}
	for k, v := range filter.(bson.M) {
		doc[k] = v
	}
	for k, v := range set {
		doc[k] = v
	}
	c.docs = append(c.docs, doc)
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: doc["_id"]}, nil
}

func (c *fakeCollection) DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["DeleteOne"]++

	if c.deleteErr != nil {
		return nil, c.deleteErr
	}
	for i, doc := range c.docs {
		if matches(doc, filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (c *fakeCollection) CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["CountDocuments"]++

	if c.countErr != nil {
		return 0, c.countErr
	}
	var n int64
	for _, doc := range c.docs {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (c *fakeCollection) DeleteMany(ctx context.Context, filter any, opts ...options.Lister[options.DeleteManyOptions]) (*mongo.DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["DeleteMany"]++

	if c.deleteManyErr != nil {
		return nil, c.deleteManyErr
	}
	kept := c.docs[:0]
	var n int64
	for _, doc := range c.docs {
		if matches(doc, filter) {
			n++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return &mongo.DeleteResult{DeletedCount: n}, nil
}

// insert seeds a raw document, bypassing the store.
func (c *fakeCollection) insert(doc bson.M) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, cloneDoc(doc))
}

// find returns a copy of the first document matching filter.
func (c *fakeCollection) find(filter bson.M) (bson.M, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, doc := range c.docs {
		if matches(doc, filter) {
			return cloneDoc(doc), true
		}
	}
	return nil, false
}

func (c *fakeCollection) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *fakeCollection) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func matches(doc bson.M, filter any) bool {
	f, _ := filter.(bson.M)
	for k, v := range f {
		if doc[k] != v {
			return false
		}
	}
	return true
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// fakeSingleResult decodes through a BSON round trip so callers see driver types
// (bson.DateTime for dates, millisecond precision).
type fakeSingleResult struct {
	doc bson.M
	err error
}

func (r fakeSingleResult) Decode(v any) error {
	if r.err != nil {
		return r.err
	}
	raw, err := bson.Marshal(r.doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

// testClock is a manually advanced time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
