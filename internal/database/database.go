package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearance/internal/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnknownPartition is returned for a partition missing from the config
var ErrUnknownPartition = errors.New("unknown job partition")

// ensureIndexes is swapped in tests
var ensureIndexes = createJobIndexes

type Database interface {
	Health() error
	Close(ctx context.Context) error
	JobDatabase
}

type mongoDB struct {
	client *mongo.Client
	db     *mongo.Database

	// partition name -> collection holding that partition's jobs
	jobCols map[string]*mongo.Collection
}

func New(config *config.Config) (Database, error) {
	clientOptions := options.Client().ApplyURI(config.MongoDB.URI)
	if config.MongoDB.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: config.MongoDB.Username,
			Password: config.MongoDB.Password,
		})
	}

	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	db := client.Database(config.MongoDB.DB)

	jobCols := make(map[string]*mongo.Collection, len(config.Partitions))
	for partition, collection := range config.Partitions {
		col := db.Collection(collection)
		if config.MongoDB.CreateIndexes {
			ensureIndexes(col, partition)
		}
		jobCols[partition] = col
	}

	return &mongoDB{
		client:  client,
		db:      db,
		jobCols: jobCols,
	}, nil
}

func createJobIndexes(col *mongo.Collection, partition string) {
	jobIndexModels := []mongo.IndexModel{
		{
			// Listings always filter by year and coarse status
			Keys: bson.D{{Key: "year", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "year", Value: 1}, {Key: "detailed_status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "year", Value: 1}, {Key: "job_no", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "ie_code_no", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := col.Indexes().CreateMany(ctx, jobIndexModels)
	if err != nil {
		log.Warn().Err(err).Str("partition", partition).Str("collection", col.Name()).Msg("Error creating indexes")
	}
}

func (m *mongoDB) collection(partition string) (*mongo.Collection, error) {
	col, ok := m.jobCols[partition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartition, partition)
	}
	return col, nil
}

// Health implements Database interface
func (m *mongoDB) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := m.client.Ping(ctx, nil)
	if err != nil {
		log.Error().Msgf("Database health error: %v", err)
		return err
	}

	return nil
}

func (m *mongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
