package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const appName = "mytime-console"

// Options for the session store's Mongo client.
type Options struct {
	URI      string
	Database string
	// ConnectTimeout bounds server selection and the startup ping. Zero means 10s.
	ConnectTimeout time.Duration
}

// Connect dials the deployment, confirms a primary is reachable and returns
// the client with the named database.
func Connect(ctx context.Context, opts Options) (*mongo.Client, *mongo.Database, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(4)

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo %s unreachable: %w", opts.Database, err)
	}
	return client, client.Database(opts.Database), nil
}
