package database

import (
	"context"
	"errors"
	"fmt"

	"clearance/internal/model"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrJobNotFound is returned when a job lookup matches nothing
var ErrJobNotFound = errors.New("job not found")

// JobDatabase is the read side of the shipment job store
type JobDatabase interface {
	// FindJobs returns every job matching filter, in store order
	FindJobs(ctx context.Context, partition string, filter bson.M, projection bson.M) ([]model.ShipmentJob, error)

	// ListJobsPage returns one database-level page of matching jobs sorted by _id
	ListJobsPage(ctx context.Context, partition string, filter bson.M, projection bson.M, skip, limit int64) ([]model.ShipmentJob, error)

	// CountJobs counts jobs matching filter
	CountJobs(ctx context.Context, partition string, filter bson.M) (int64, error)

	// GetJob finds a single job by year and job number
	GetJob(ctx context.Context, partition, year, jobNo string) (*model.ShipmentJob, error)
}

// FindJobs retrieves the full matching set for ranking
func (m *mongoDB) FindJobs(ctx context.Context, partition string, filter bson.M, projection bson.M) ([]model.ShipmentJob, error) {
	col, err := m.collection(partition)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Str("partition", partition).Msg("Failed to find jobs")
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []model.ShipmentJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		log.Error().Err(err).Str("partition", partition).Msg("Failed to decode jobs")
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	log.Debug().Str("partition", partition).Int("count", len(jobs)).Msg("Found jobs")
	return jobs, nil
}

// ListJobsPage retrieves a page of jobs using skip and limit in the database
func (m *mongoDB) ListJobsPage(ctx context.Context, partition string, filter bson.M, projection bson.M, skip, limit int64) ([]model.ShipmentJob, error) {
	col, err := m.collection(partition)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Str("partition", partition).Int64("skip", skip).Int64("limit", limit).Msg("Failed to list jobs page")
		return nil, fmt.Errorf("list jobs page: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []model.ShipmentJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		log.Error().Err(err).Msg("Failed to decode jobs")
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	return jobs, nil
}

// CountJobs counts the jobs matching filter
func (m *mongoDB) CountJobs(ctx context.Context, partition string, filter bson.M) (int64, error) {
	col, err := m.collection(partition)
	if err != nil {
		return 0, err
	}

	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("partition", partition).Msg("Failed to count jobs")
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return count, nil
}

// GetJob retrieves one job by year and job number
func (m *mongoDB) GetJob(ctx context.Context, partition, year, jobNo string) (*model.ShipmentJob, error) {
	col, err := m.collection(partition)
	if err != nil {
		return nil, err
	}

	var job model.ShipmentJob
	err = col.FindOne(ctx, bson.M{"year": year, "job_no": jobNo}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		log.Error().Err(err).Str("year", year).Str("jobNo", jobNo).Msg("Failed to get job")
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}
