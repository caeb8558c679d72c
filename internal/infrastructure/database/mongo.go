package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storyshare-backend/internal/config"
)

// Collection names. Every repository resolves its collection through
// these so the set of entity kinds stays in one place.
const (
	CollectionUsers    = "users"
	CollectionOwners   = "owners"
	CollectionGenres   = "genres"
	CollectionStories  = "stories"
	CollectionComments = "comments"
)

// MongoDB is the single long-lived storage handle, created at process
// start and injected into every repository.
type MongoDB struct {
	Client *mongo.Client
	cfg    config.MongoConfig
}

func NewMongoDB(cfg config.MongoConfig) *MongoDB {
	return &MongoDB{cfg: cfg}
}

// Connect establishes the client connection and verifies it with a ping.
func (m *MongoDB) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.cfg.URI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	m.Client = client
	return nil
}

// Collection returns a handle scoped to the configured database.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Client.Database(m.cfg.Database).Collection(name)
}

func (m *MongoDB) HealthCheck(ctx context.Context) error {
	if m.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	return nil
}

// Close disconnects the client on process shutdown.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
