package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clearance/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Client interface {
	Close() error

	DeclareExchange(name, kind string) error
	DeclareQueue(name string) (amqp.Queue, error)
	BindQueue(queueName, exchangeName, routingKey string) error

	Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error
	Consume(queueName string, consumerTag string) (<-chan amqp.Delivery, error)

	Health() error
}

type client struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	config      config.RabbitMQConfig
	mu          sync.Mutex
	notifyClose chan *amqp.Error

	// set for the whole reconnect loop, which holds mu only per attempt
	reconnecting atomic.Bool
	done         chan struct{}
	closeOnce    sync.Once
}

func NewClientFromConfig(cfg config.RabbitMQConfig) (Client, error) {
	c := &client{config: cfg, done: make(chan struct{})}

	if err := c.connect(); err != nil {
		return nil, err
	}

	c.setupReconnect()

	return c, nil
}

func (c *client) url() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		c.config.Username,
		c.config.Password,
		c.config.Host,
		c.config.Port,
		c.config.VHost,
	)
}

func (c *client) connect() error {
	conn, err := amqp.DialConfig(c.url(), amqp.Config{
		Heartbeat: 30 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to RabbitMQ")
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open RabbitMQ channel")
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if c.config.PrefetchCount > 0 {
		if err := ch.Qos(c.config.PrefetchCount, 0, false); err != nil {
			log.Error().Err(err).Msg("Failed to set channel QoS")
			conn.Close()
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	c.conn = conn
	c.channel = ch

	log.Info().
		Str("host", c.config.Host).
		Int("port", c.config.Port).
		Str("vhost", c.config.VHost).
		Msg("RabbitMQ connection established")

	return nil
}

func (c *client) setupReconnect() {
	c.notifyClose = c.conn.NotifyClose(make(chan *amqp.Error, 1))

	go func(notify chan *amqp.Error) {
		for err := range notify {
			log.Warn().
				Str("reason", err.Reason).
				Int("code", err.Code).
				Msg("RabbitMQ connection closed, reconnecting")

			c.doReconnect()
		}
	}(c.notifyClose)
}

func (c *client) doReconnect() {
	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}
	defer c.reconnecting.Store(false)

	c.mu.Lock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		c.conn.Close()
	}
	c.mu.Unlock()

	backoff := 1 * time.Second
	maxBackoff := 30 * time.Second

	for {
		if c.reconnectOnce(backoff) {
			return
		}

		select {
		case <-c.done:
			log.Info().Msg("RabbitMQ client closed, giving up reconnect")
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// reconnectOnce makes a single attempt under c.mu
func (c *client) reconnectOnce(backoff time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a publisher may have reopened the connection between attempts
	if c.conn != nil && c.channel != nil && !c.conn.IsClosed() {
		return true
	}

	log.Info().Dur("backoff", backoff).Msg("Attempting to reconnect to RabbitMQ")
	if err := c.connect(); err != nil {
		return false
	}

	c.setupReconnect()
	log.Info().Msg("Reconnected to RabbitMQ")
	return true
}

// ensureConnected reopens a dropped connection; callers hold c.mu
func (c *client) ensureConnected() error {
	if c.conn != nil && c.channel != nil && !c.conn.IsClosed() {
		return nil
	}
	if err := c.connect(); err != nil {
		return err
	}
	c.setupReconnect()
	return nil
}

func (c *client) Health() error {
	if c.reconnecting.Load() {
		return fmt.Errorf("reconnect in progress")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.channel == nil {
		return fmt.Errorf("nil connection or channel")
	}
	if c.conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}
	return nil
}

func (c *client) Close() error {
	c.closeOnce.Do(func() {
		if c.done != nil {
			close(c.done)
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ channel")
			return fmt.Errorf("channel close error: %w", err)
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ connection")
			return fmt.Errorf("connection close error: %w", err)
		}
	}

	log.Info().Msg("RabbitMQ connection and channel closed")
	return nil
}

func (c *client) Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(); err != nil {
		return fmt.Errorf("failed to reconnect before publishing: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Headers:      headers,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("exchange", exchange).
			Str("routingKey", routingKey).
			Msg("Failed to publish message")
		return err
	}

	log.Debug().
		Str("exchange", exchange).
		Str("routingKey", routingKey).
		Int("size", len(body)).
		Msg("Published message")

	return nil
}

func (c *client) Consume(queueName string, consumerTag string) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(); err != nil {
		return nil, fmt.Errorf("failed to reconnect before consuming: %w", err)
	}

	deliveries, err := c.channel.Consume(
		queueName,   // queue
		consumerTag, // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("queue", queueName).
			Str("consumerTag", consumerTag).
			Msg("Failed to start consuming")
		return nil, fmt.Errorf("consume error: %w", err)
	}

	log.Info().
		Str("queue", queueName).
		Str("consumerTag", consumerTag).
		Msg("Started consuming messages")

	return deliveries, nil
}
