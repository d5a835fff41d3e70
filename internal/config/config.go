package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default values applied when the config file leaves a field empty
const (
	DefaultPort                = 9000
	DefaultPageLimit           = 100
	DefaultQueryTimeoutSeconds = 30
	DefaultCacheTTLSeconds     = 60

	DefaultPartition    = "default"
	GandhidhamPartition = "gandhidham"
)

// Config represents the entire application configuration
type Config struct {
	Env        string            `json:"env"`
	Port       int               `json:"port"`
	AppName    string            `json:"app_name"`
	MongoDB    MongoDBConfig     `json:"mongodb"`
	Redis      RedisConfig       `json:"redis"`
	RabbitMQ   RabbitMQConfig    `json:"rabbitmq"`
	AWS        AWSConfig         `json:"aws"`
	Logging    LoggingConfig     `json:"logging"`
	CORS       CORSConfig        `json:"cors"`
	Jobs       JobsConfig        `json:"jobs"`
	Partitions map[string]string `json:"partitions"` // partition name -> collection name
}

type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

// RabbitMQConfig holds the broker used for job-update events
type RabbitMQConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	VHost         string `json:"vhost"`
	ExchangeName  string `json:"exchange_name"`
	QueueName     string `json:"queue_name"`
	RoutingKey    string `json:"routing_key"`
	PrefetchCount int    `json:"prefetch_count"`
}

// AWSConfig holds the S3 bucket that receives job exports
type AWSConfig struct {
	AccessKey  string `json:"access_key"`
	SecretKey  string `json:"secret_key"`
	BucketName string `json:"bucket_name"`
	Region     string `json:"region"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age,omitempty"` // Optional, seconds that preflight requests can be cached
}

// MongoDBConfig contains MongoDB connection details
type MongoDBConfig struct {
	URI      string `json:"uri"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       string `json:"db"`

	// CreateIndexes builds the listing indexes on startup when set
	CreateIndexes bool `json:"create_indexes"`
}

// LoggingConfig contains logging-related configurations
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "console" or "json"
}

// JobsConfig tunes the job listing endpoints
type JobsConfig struct {
	DefaultLimit        int `json:"default_limit"`
	QueryTimeoutSeconds int `json:"query_timeout_seconds"`
	CacheTTLSeconds     int `json:"cache_ttl_seconds"`
}

// LoadConfig reads configuration from the specified file path
func LoadConfig(filePath string) (*Config, error) {
	configData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(configData, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Jobs.DefaultLimit <= 0 {
		c.Jobs.DefaultLimit = DefaultPageLimit
	}
	if c.Jobs.QueryTimeoutSeconds <= 0 {
		c.Jobs.QueryTimeoutSeconds = DefaultQueryTimeoutSeconds
	}
	if c.Jobs.CacheTTLSeconds <= 0 {
		c.Jobs.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "clearance"
	}
	if c.Partitions == nil {
		c.Partitions = map[string]string{}
	}
	if _, ok := c.Partitions[DefaultPartition]; !ok {
		c.Partitions[DefaultPartition] = "jobs"
	}
	if _, ok := c.Partitions[GandhidhamPartition]; !ok {
		c.Partitions[GandhidhamPartition] = "gandhidham_jobs"
	}
}

// Validate checks the fields the services cannot start without
func (c *Config) Validate() error {
	if c.MongoDB.URI == "" {
		return fmt.Errorf("mongodb.uri is required")
	}
	if c.MongoDB.DB == "" {
		return fmt.Errorf("mongodb.db is required")
	}
	for name, collection := range c.Partitions {
		if collection == "" {
			return fmt.Errorf("partition %q has no collection", name)
		}
	}
	return nil
}

// RedisEnabled reports whether a Redis address was configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}

// RabbitEnabled reports whether a RabbitMQ host was configured
func (c *Config) RabbitEnabled() bool {
	return c.RabbitMQ.Host != ""
}

// S3Enabled reports whether an export bucket was configured
func (c *Config) S3Enabled() bool {
	return c.AWS.BucketName != ""
}
