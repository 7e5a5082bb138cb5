package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type ScrapeConfig struct {
	// SimulatedDelay stands in for the time a real scrape would take.
	SimulatedDelay    time.Duration `yaml:"simulated_delay"`
	DefaultFrequency  string        `yaml:"default_frequency"`
	DefaultDataPoints []string      `yaml:"default_data_points"`
	DefaultDepth      int           `yaml:"default_depth"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "page_scraper"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "scrapes"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "scrape_events"
	}
	if c.Scrape.SimulatedDelay == 0 {
		c.Scrape.SimulatedDelay = 2 * time.Second
	}
	if c.Scrape.DefaultFrequency == "" {
		c.Scrape.DefaultFrequency = "daily"
	}
	if len(c.Scrape.DefaultDataPoints) == 0 {
		c.Scrape.DefaultDataPoints = []string{"posts", "likes", "comments"}
	}
	if c.Scrape.DefaultDepth == 0 {
		c.Scrape.DefaultDepth = 10
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
