// Package mongo stores accounts in a MongoDB collection.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"accounts/config"
	"accounts/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const (
	defaultDatabase       = "accounts"
	defaultCollection     = "accounts"
	defaultConnectTimeout = 10 * time.Second
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects a MongoDB client and returns the account collection.
// The connection is verified and indexes are created when the app starts.
func New(params Params) (*mongo.Collection, error) {
	mongoCfg := params.Config.Store.Mongo
	if mongoCfg == nil || mongoCfg.URI == "" {
		return nil, errors.New("mongo store requires store.mongo.uri")
	}

	connectTimeout := mongoCfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(mongoCfg.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	database := mongoCfg.Database
	if database == "" {
		database = defaultDatabase
	}
	collectionName := mongoCfg.Collection
	if collectionName == "" {
		collectionName = defaultCollection
	}
	collection := client.Database(database).Collection(collectionName)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}
			if err := EnsureIndexes(ctx, collection); err != nil {
				return err
			}

			params.Logger.Info("MongoDB connected",
				slog.String("database", database),
				slog.String("collection", collectionName),
			)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return client.Disconnect(ctx)
		},
	})

	return collection, nil
}
