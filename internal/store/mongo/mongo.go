// Package mongo persists contact submissions in a MongoDB collection.
// The collection is append-only: insert is the only operation.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mstepanov/contact-backend/internal/contact"
)

// Store owns the MongoDB client for the process lifetime. The driver
// pools connections internally; one Store is shared by all requests.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// submissionDoc is the persisted document shape.
type submissionDoc struct {
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"createdAt"`
}

// New connects to MongoDB and verifies the connection with a ping.
// Callers treat an error here as fatal: the process must not accept
// traffic without a reachable store.
func New(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client: client,
		col:    client.Database(database).Collection(collection),
	}, nil
}

// SaveSubmission inserts one submission document and returns its ObjectID
// hex as the opaque stored id. A single-document insert is atomic, so a
// failure means nothing was written.
func (s *Store) SaveSubmission(ctx context.Context, sub *contact.Submission) (string, error) {
	res, err := s.col.InsertOne(ctx, submissionDoc{
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: sub.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

// Close releases the client and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
