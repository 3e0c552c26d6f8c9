// Package mongostore implements session.Store on top of a MongoDB collection.
//
// The caller owns the connection, the collection and its schema; the store only needs
// to know which document fields hold the session id, the serialized data and the last
// activity timestamp (see session.Config).
//
//	coll := client.Database("app").Collection("sessions")
//
//	store, err := mongostore.New[Cart](coll,
//		mongostore.WithConfigOptions[Cart](
//			session.WithSessionIDField("sessionId"),
//			session.WithDefaultExpiration(2*time.Hour),
//		),
//	)
//
// Each operation maps to one query:
//
//	Get     FindOne {sid: id}            (+ DeleteOne when the record is expired)
//	Set     UpdateOne {sid: id} $set ... with upsert
//	Destroy DeleteOne {sid: id}
//	Length  CountDocuments {}
//	Clear   DeleteMany {}
//
// The store creates no indexes. A unique index on the session id field is recommended
// but left to the schema owner. Driver errors are returned unchanged and never retried.
package mongostore
