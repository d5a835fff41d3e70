package cli

import (
	"context"
	"fmt"
	"time"

	"clearance/internal/cache"
	"clearance/internal/controller"
	"clearance/internal/model"
	"clearance/internal/rabbitmq"

	"github.com/spf13/cobra"
)

var invalidateYear string

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Drop cached listings of one partition and year",
	Long: `Publish a job update so every API server drops its cached listings of
one partition and year. Without RabbitMQ configured the cache is cleared
directly in Redis.

Examples:
  jobsctl invalidate --year 24-25
  jobsctl invalidate -p gandhidham --year 23-24`,
	RunE: runInvalidate,
}

func init() {
	invalidateCmd.Flags().StringVarP(&invalidateYear, "year", "y", "", "financial year, e.g. 24-25")
	_ = invalidateCmd.MarkFlagRequired("year")
}

func runInvalidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	event := model.JobUpdateEvent{Partition: partition, Year: invalidateYear}

	if cfg.RabbitEnabled() {
		client, err := rabbitmq.NewClientFromConfig(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		defer client.Close()

		if err := controller.PublishJobUpdate(ctx, client, cfg.RabbitMQ, event); err != nil {
			return err
		}
		fmt.Printf("Published update for %s/%s\n", event.Partition, event.Year)
		return nil
	}

	if !cfg.RedisEnabled() {
		return fmt.Errorf("neither rabbitmq nor redis is configured")
	}

	rc, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	redisCache = rc

	listings := cache.NewListingCache(rc, time.Duration(cfg.Jobs.CacheTTLSeconds)*time.Second)
	n, err := listings.InvalidateYear(ctx, event.Partition, event.Year)
	if err != nil {
		return fmt.Errorf("invalidate %s/%s: %w", event.Partition, event.Year, err)
	}
	fmt.Printf("Dropped %d cached listings for %s/%s\n", n, event.Partition, event.Year)
	return nil
}
