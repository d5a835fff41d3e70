package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"clearance/internal/config"
	"clearance/internal/model"
	"clearance/internal/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const consumerRetryDelay = 5 * time.Second

// UpdateConsumer drops cached listings when ingestion reports changed jobs
type UpdateConsumer interface {
	// Start declares the update queue and begins consuming in the background
	Start(ctx context.Context) error

	// Stop signals the consumer and waits for it to exit
	Stop()
}

type updateConsumer struct {
	jc           JobController
	rabbitClient rabbitmq.Client
	rabbitConfig config.RabbitMQConfig
	consumerTag  string
	shutdown     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

func NewUpdateConsumer(jc JobController, rabbitClient rabbitmq.Client, rabbitConfig config.RabbitMQConfig) UpdateConsumer {
	return &updateConsumer{
		jc:           jc,
		rabbitClient: rabbitClient,
		rabbitConfig: rabbitConfig,
		shutdown:     make(chan struct{}),
	}
}

func (c *updateConsumer) Start(ctx context.Context) error {
	if err := rabbitmq.SetupJobUpdates(c.rabbitClient, c.rabbitConfig); err != nil {
		return err
	}

	c.consumerTag = fmt.Sprintf("job-updates-%s", primitive.NewObjectID().Hex())
	c.startConsumer(ctx, c.rabbitConfig.QueueName, c.consumerTag)

	log.Info().Str("queue", c.rabbitConfig.QueueName).Msg("Job update consumer started")
	return nil
}

func (c *updateConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.shutdown) })
	c.wg.Wait()
	log.Info().Msg("Job update consumer stopped")
}

func (c *updateConsumer) startConsumer(ctx context.Context, queueName, consumerTag string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		for {
			select {
			case <-ctx.Done():
				log.Info().Str("consumerTag", consumerTag).Msg("Context cancelled, stopping consumer")
				return
			case <-c.shutdown:
				log.Info().Str("consumerTag", consumerTag).Msg("Shutdown signal received, stopping consumer")
				return
			default:
			}

			deliveries, err := c.rabbitClient.Consume(queueName, consumerTag)
			if err != nil {
				log.Error().
					Err(err).
					Str("queue", queueName).
					Str("consumerTag", consumerTag).
					Msg("Failed to consume from queue")

				if !c.wait(ctx, consumerRetryDelay) {
					return
				}
				continue
			}

			if !c.drain(ctx, deliveries) {
				return
			}

			log.Warn().
				Str("queue", queueName).
				Str("consumerTag", consumerTag).
				Msg("Consumer channel closed, reconnecting...")

			if !c.wait(ctx, consumerRetryDelay) {
				return
			}
		}
	}()
}

// drain handles deliveries until the channel closes (true) or the consumer
// is told to stop (false)
func (c *updateConsumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-c.shutdown:
			return false
		case delivery, ok := <-deliveries:
			if !ok {
				return true
			}
			c.processDelivery(ctx, delivery)
		}
	}
}

func (c *updateConsumer) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-c.shutdown:
		return false
	case <-timer.C:
		return true
	}
}

// ParseJobUpdate decodes an update message; partition and year are required
func ParseJobUpdate(body []byte) (model.JobUpdateEvent, error) {
	var event model.JobUpdateEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode job update: %w", err)
	}

	event.Partition = strings.TrimSpace(event.Partition)
	event.Year = strings.TrimSpace(event.Year)
	if event.Partition == "" || event.Year == "" {
		return event, fmt.Errorf("job update requires partition and year")
	}
	return event, nil
}

func (c *updateConsumer) processDelivery(ctx context.Context, delivery amqp.Delivery) {
	event, err := ParseJobUpdate(delivery.Body)
	if err != nil {
		log.Error().Err(err).Msg("Malformed job update, rejecting")
		delivery.Nack(false, false) // Don't requeue malformed messages
		return
	}

	logger := log.With().
		Str("partition", event.Partition).
		Str("year", event.Year).
		Logger()

	if _, err := c.jc.InvalidateYear(ctx, event.Partition, event.Year); err != nil {
		logger.Error().Err(err).Msg("Failed to invalidate cached listings")
		delivery.Nack(false, false)
		return
	}

	delivery.Ack(false)
}

// PublishJobUpdate announces that jobs of one partition and year changed
func PublishJobUpdate(ctx context.Context, client rabbitmq.Client, cfg config.RabbitMQConfig, event model.JobUpdateEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job update: %w", err)
	}

	headers := amqp.Table{
		"partition": event.Partition,
		"year":      event.Year,
	}

	if err := client.Publish(ctx, cfg.ExchangeName, cfg.RoutingKey, body, headers); err != nil {
		return fmt.Errorf("failed to publish job update: %w", err)
	}
	return nil
}
