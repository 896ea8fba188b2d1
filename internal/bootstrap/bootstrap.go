// Package bootstrap wires the adapters shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	dynamoactor "github.com/rbroggi/tinkoko/internal/actors/dynamodb"
	mongoactor "github.com/rbroggi/tinkoko/internal/actors/mongo"
	postgresactor "github.com/rbroggi/tinkoko/internal/actors/postgres"
	"github.com/rbroggi/tinkoko/internal/config"
	"github.com/rbroggi/tinkoko/internal/core/ports"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupLogging applies the configured level to the standard logrus logger.
func SetupLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// OpenRepository builds the record store selected by cfg.Backend.
// The returned close func releases the underlying connection.
func OpenRepository(ctx context.Context, cfg config.StoreConfig) (ports.Repository, func(), error) {
	logger := log.WithField("backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendDynamoDB:
		client, err := dynamoactor.NewClient(ctx, dynamoactor.ClientArgs{
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		repo, err := dynamoactor.NewDynamoDB(dynamoactor.DynamoDBArgs{Client: client, Table: cfg.DynamoDB.Table})
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("table", cfg.DynamoDB.Table).Info("using dynamodb store")
		return repo, func() {}, nil

	case config.BackendMongo:
		db, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to mongo: %w", err)
		}
		database := db.Database(cfg.Mongo.Database)
		repo, err := mongoactor.NewMongoDB(mongoactor.MongoDBArgs{
			UserCollection:    database.Collection("users"),
			ProductCollection: database.Collection("products"),
		})
		if err != nil {
			_ = db.Disconnect(ctx)
			return nil, nil, err
		}
		logger.WithField("database", cfg.Mongo.Database).Info("using mongo store")
		return repo, func() {
			if err := db.Disconnect(context.Background()); err != nil {
				logger.WithError(err).Warn("error disconnecting from mongo")
			}
		}, nil

	case config.BackendPostgres:
		opts, err := pg.ParseURL(cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing postgres url: %w", err)
		}
		db := pg.Connect(opts)
		repo, err := postgresactor.NewPostgresDB(postgresactor.PostgresDBArgs{DB: db})
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres store")
		return repo, func() {
			if err := db.Close(); err != nil {
				logger.WithError(err).Warn("error closing postgres handle")
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend [%s]", cfg.Backend)
}
