package database

import (
	"context"
	"fmt"
	"time"

	"accountcleanup/config"

	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Closer releases the connection behind a Store.
type Closer func(ctx context.Context) error

// Open builds the Store selected by cfg.StoreDriver. app is only required
// for the firestore driver.
func Open(ctx context.Context, cfg config.Config, app *firebase.App) (Store, Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		if app == nil {
			return nil, nil, fmt.Errorf("firestore store requires a firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		return NewFirestoreStore(client), func(context.Context) error { return client.Close() }, nil

	case config.StoreMongo:
		client, err := ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewMongoStore(client.Database(cfg.MongoDatabase)), client.Disconnect, nil

	case config.StoreMemory:
		return NewMemoryStore(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// ConnectMongo opens and pings a MongoDB connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
