package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/demandhub/consultancy-api/internal/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

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

// readDoc normalizes a raw document and records every timestamp that could
// not be parsed.
func readDoc(logger zerolog.Logger, collection string, raw bson.M) (bson.M, map[string]string) {
	doc, unparsed := FromStorage(raw)
	for field, value := range unparsed {
		metrics.TimestampParseFailuresTotal.WithLabelValues(field).Inc()
		logger.Warn().
			Str("collection", collection).
			Str("id", getString(raw, "id")).
			Str("field", field).
			Str("value", value).
			Msg("stored timestamp could not be parsed")
	}
	return doc, unparsed
}

// optional dereferences p for storage; nil pointers are stored as null.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
