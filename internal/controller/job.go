package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearance/internal/cache"
	"clearance/internal/config"
	"clearance/internal/database"
	"clearance/internal/model"
	"clearance/internal/query"
	"clearance/internal/ranking"
	"clearance/internal/status"

	"github.com/rs/zerolog/log"
)

// ListMessage is the message of every successful listing response
const ListMessage = "Jobs fetched successfully"

// Page is a 1-based page request. Values below 1 fall back to defaults.
type Page struct {
	Number int
	Limit  int
}

// JobController serves the ranked and flat job listings
type JobController interface {
	// ListRanked filters, orders and paginates jobs for one listing request
	ListRanked(ctx context.Context, q query.JobQuery, page Page) (*model.JobPage, error)

	// ListFlat pages jobs at the database level, sorted by _id and unranked
	ListFlat(ctx context.Context, partition, year string, requested status.Coarse, search string, page Page) (*model.JobPage, error)

	// OrderedJobs returns the full ordered sequence for a listing request
	OrderedJobs(ctx context.Context, q query.JobQuery) ([]model.ShipmentJob, error)

	// GetJob finds one job by year and job number
	GetJob(ctx context.Context, partition, year, jobNo string) (*model.ShipmentJob, error)

	// InvalidateYear drops cached listings of one partition and year
	InvalidateYear(ctx context.Context, partition, year string) (int, error)
}

type jobController struct {
	db           database.JobDatabase
	listings     *cache.ListingCache
	queryTimeout time.Duration
	defaultLimit int
}

// NewJobController creates a job controller. A nil cache disables caching.
func NewJobController(db database.JobDatabase, c cache.Cache, jobsConfig config.JobsConfig) JobController {
	if c == nil {
		c = cache.NopCache{}
	}

	queryTimeout := time.Duration(jobsConfig.QueryTimeoutSeconds) * time.Second
	if queryTimeout <= 0 {
		queryTimeout = config.DefaultQueryTimeoutSeconds * time.Second
	}
	ttl := time.Duration(jobsConfig.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = config.DefaultCacheTTLSeconds * time.Second
	}
	defaultLimit := jobsConfig.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = ranking.DefaultLimit
	}

	return &jobController{
		db:           db,
		listings:     cache.NewListingCache(c, ttl),
		queryTimeout: queryTimeout,
		defaultLimit: defaultLimit,
	}
}

func (c *jobController) normalize(page Page) Page {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Limit < 1 {
		page.Limit = c.defaultLimit
	}
	return page
}

func (c *jobController) ListRanked(ctx context.Context, q query.JobQuery, page Page) (*model.JobPage, error) {
	ordered, err := c.OrderedJobs(ctx, q)
	if err != nil {
		return nil, err
	}

	page = c.normalize(page)
	data, p := ranking.Paginate(ordered, page.Number, page.Limit)

	return &model.JobPage{
		Message:     ListMessage,
		Data:        data,
		Total:       p.Total,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}, nil
}

func (c *jobController) OrderedJobs(ctx context.Context, q query.JobQuery) ([]model.ShipmentJob, error) {
	key := q.Key()

	cached, err := c.listings.Get(ctx, q.Partition, q.Year, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("partition", q.Partition).Str("year", q.Year).Msg("Listing cache read failed")
	}

	queryCtx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	jobs, err := c.db.FindJobs(queryCtx, q.Partition, query.Build(q), query.ListingProjection)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}

	ordered := ranking.Order(jobs)

	if err := c.listings.Put(ctx, q.Partition, q.Year, key, ordered); err != nil {
		log.Warn().Err(err).Str("partition", q.Partition).Str("year", q.Year).Msg("Listing cache write failed")
	}

	log.Debug().
		Str("partition", q.Partition).
		Str("year", q.Year).
		Str("status", string(q.Status)).
		Int("matched", len(ordered)).
		Msg("Ranked jobs")

	return ordered, nil
}

func (c *jobController) ListFlat(ctx context.Context, partition, year string, requested status.Coarse, search string, page Page) (*model.JobPage, error) {
	page = c.normalize(page)
	filter := query.FlatFilter(year, requested, search)

	queryCtx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	total, err := c.db.CountJobs(queryCtx, partition, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	limit := int64(page.Limit)
	totalPages := ranking.PageCount(total, limit)
	result := &model.JobPage{
		Message:     ListMessage,
		Data:        []model.ShipmentJob{},
		Total:       int(total),
		CurrentPage: page.Number,
		TotalPages:  int(totalPages),
	}

	// page <= totalPages keeps skip below total
	if int64(page.Number) > totalPages {
		return result, nil
	}

	skip := int64(page.Number-1) * limit
	jobs, err := c.db.ListJobsPage(queryCtx, partition, filter, query.ListingProjection, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if jobs != nil {
		result.Data = jobs
	}

	return result, nil
}

func (c *jobController) GetJob(ctx context.Context, partition, year, jobNo string) (*model.ShipmentJob, error) {
	queryCtx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	return c.db.GetJob(queryCtx, partition, year, jobNo)
}

func (c *jobController) InvalidateYear(ctx context.Context, partition, year string) (int, error) {
	n, err := c.listings.InvalidateYear(ctx, partition, year)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate %s/%s: %w", partition, year, err)
	}

	log.Info().Str("partition", partition).Str("year", year).Int("entries", n).Msg("Invalidated cached listings")
	return n, nil
}
