// Package cli provides the jobsctl command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"clearance/internal/cache"
	"clearance/internal/config"
	"clearance/internal/controller"
	"clearance/internal/database"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configPath string
	partition  string

	cfg *config.Config

	// opened on first use by commands that read jobs
	db         database.Database
	redisCache *cache.RedisCache
)

var rootCmd = &cobra.Command{
	Use:   "jobsctl",
	Short: "Inspect ranked customs job listings",
	Long: `jobsctl runs the job listing engine from the command line.

It prints ranked listing pages, explains which status lists a job lands in,
and announces job updates so API servers drop stale cached listings.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		config.SetupLogging(cfg.Logging)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if redisCache != nil {
			redisCache.Close()
		}
		if db != nil {
			if err := db.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// jobController connects to MongoDB, and Redis when configured, on first use
func jobController() (controller.JobController, error) {
	if db == nil {
		opened, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		db = opened
	}

	var c cache.Cache
	if cfg.RedisEnabled() {
		if redisCache == nil {
			rc, err := cache.NewRedisCache(cfg.Redis)
			if err != nil {
				return nil, fmt.Errorf("connect to redis: %w", err)
			}
			redisCache = rc
		}
		c = redisCache
	}

	return controller.NewJobController(db, c, cfg.Jobs), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultPath := os.Getenv("CLEARANCE_CONFIG")
	if defaultPath == "" {
		defaultPath = "config/config.json"
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to the JSON config file")
	rootCmd.PersistentFlags().StringVarP(&partition, "partition", "p", config.DefaultPartition, "record partition")

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(invalidateCmd)
}
