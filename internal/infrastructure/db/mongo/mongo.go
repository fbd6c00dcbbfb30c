package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers    = "usuarios"
	collectionBooks    = "libros"
	collectionLoans    = "prestamos"
	collectionCounters = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// email index is what turns a second signup into a duplicate key error.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	if _, err := db.Collection(collectionBooks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "categoria", Value: 1}},
	}); err != nil {
		return fmt.Errorf("books indexes: %w", err)
	}

	if _, err := db.Collection(collectionLoans).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "usuario_id", Value: 1}, {Key: "fecha_prestamo", Value: -1}},
	}); err != nil {
		return fmt.Errorf("loans indexes: %w", err)
	}

	return nil
}

// sequence hands out monotonically increasing int64 ids per collection, so
// documents keep the same numeric ids the relational store uses.
type sequence struct {
	col  *mongo.Collection
	name string
}

func newSequence(db *mongo.Database, name string) *sequence {
	return &sequence{col: db.Collection(collectionCounters), name: name}
}

// next increments the counter. Two first-ever upserts can race on _id; the
// loser retries once and finds the document the winner created.
func (s *sequence) next(ctx context.Context) (int64, error) {
	seq, err := s.inc(ctx)
	if mongo.IsDuplicateKeyError(err) {
		seq, err = s.inc(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", s.name, err)
	}
	return seq, nil
}

func (s *sequence) inc(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	return doc.Seq, err
}
