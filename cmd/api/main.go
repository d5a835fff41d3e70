package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearance/internal/aws"
	"clearance/internal/cache"
	"clearance/internal/config"
	"clearance/internal/controller"
	"clearance/internal/database"
	"clearance/internal/rabbitmq"
	"clearance/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	defaultPath := os.Getenv("CLEARANCE_CONFIG")
	if defaultPath == "" {
		defaultPath = "config/config.json"
	}
	configPath := flag.String("config", defaultPath, "path to the JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}
	config.SetupLogging(cfg.Logging)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	// optional backends stay nil interfaces when disabled or unreachable
	var jobCache cache.Cache
	if cfg.RedisEnabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, listings will not be cached")
		} else {
			jobCache = redisCache
			defer redisCache.Close()
		}
	}

	var rabbit rabbitmq.Client
	if cfg.RabbitEnabled() {
		client, err := rabbitmq.NewClientFromConfig(cfg.RabbitMQ)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, cache invalidation relies on TTL")
		} else {
			rabbit = client
			defer client.Close()
		}
	}

	var fileService aws.FileService
	if cfg.S3Enabled() {
		fs, err := aws.NewFileService(cfg.AWS)
		if err != nil {
			log.Warn().Err(err).Msg("S3 unavailable, exports will be streamed")
		} else {
			fileService = fs
		}
	}

	jc := controller.NewJobController(db, jobCache, cfg.Jobs)
	ec := controller.NewExportController(jc, fileService)
	sc := controller.NewServer(db, jobCache, rabbit, fileService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if rabbit != nil {
		consumer := controller.NewUpdateConsumer(jc, rabbit, cfg.RabbitMQ)
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to start job update consumer")
		} else {
			defer consumer.Stop()
		}
	}

	srv := server.New(*cfg, sc, jc, ec)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
