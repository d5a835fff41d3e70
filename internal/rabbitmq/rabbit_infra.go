package rabbitmq

import (
	"fmt"

	"clearance/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

func (c *client) DeclareExchange(name, kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(); err != nil {
		return fmt.Errorf("failed to reconnect before declaring exchange: %w", err)
	}

	err := c.channel.ExchangeDeclare(name, kind, true, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Str("exchange", name).Msg("Failed to declare exchange")
		return err
	}

	log.Info().Str("exchange", name).Str("type", kind).Msg("Declared exchange")
	return nil
}

func (c *client) DeclareQueue(name string) (amqp.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(); err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to reconnect before declaring queue: %w", err)
	}

	queue, err := c.channel.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Str("queue", name).Msg("Failed to declare queue")
		return queue, err
	}

	log.Info().Str("queue", name).Msg("Declared queue")
	return queue, nil
}

func (c *client) BindQueue(queueName, exchangeName, routingKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(); err != nil {
		return fmt.Errorf("failed to reconnect before binding queue: %w", err)
	}

	err := c.channel.QueueBind(queueName, routingKey, exchangeName, false, nil)
	if err != nil {
		log.Error().
			Err(err).
			Str("queue", queueName).
			Str("exchange", exchangeName).
			Str("routingKey", routingKey).
			Msg("Failed to bind queue")
		return err
	}

	log.Info().
		Str("queue", queueName).
		Str("exchange", exchangeName).
		Str("routingKey", routingKey).
		Msg("Bound queue to exchange")
	return nil
}

// SetupJobUpdates declares the direct exchange and durable queue that carry
// job-update events and binds them with the configured routing key
func SetupJobUpdates(c Client, cfg config.RabbitMQConfig) error {
	if err := c.DeclareExchange(cfg.ExchangeName, "direct"); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := c.DeclareQueue(cfg.QueueName)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.QueueName, err)
	}

	if err := c.BindQueue(queue.Name, cfg.ExchangeName, cfg.RoutingKey); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	return nil
}
