package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env          string `yaml:"env" env:"ORDER_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	OrderDB      `yaml:"order_db"`
	Redis        `yaml:"redis"`
	Cache        `yaml:"cache"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Background   `yaml:"background"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type OrderDB struct {
	Dsn            string `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"ORDER_MIGRATIONS_PATH" env-default:"migrations"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env-default:"5"`
}

// Redis configures the derived cache store. Driver "memory" keeps the
// views inside the process and ignores the connection settings.
type Redis struct {
	Driver      string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"redis"`
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	OpTimeout   time.Duration `yaml:"op_timeout" env-default:"1s"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"2s"`
}

type Cache struct {
	RecentLimit int           `yaml:"recent_limit" env-default:"10"`
	CountTTL    time.Duration `yaml:"count_ttl" env-default:"5m"`
	RecentTTL   time.Duration `yaml:"recent_ttl" env-default:"5m"`
	OrderTTL    time.Duration `yaml:"order_ttl" env-default:"60s"`
}

type LogConfig struct {
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat  string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput  string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
	MaxSizeMB  int    `yaml:"max_size_mb" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days" env-default:"14"`
}

type KafkaService struct {
	Enabled bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	Topic   string `yaml:"topic" env:"KAFKA_TOPIC" env-default:"order-events"`
}

type Background struct {
	RepairInterval time.Duration `yaml:"repair_interval" env-default:"30s"`
	HealthInterval time.Duration `yaml:"health_interval" env-default:"10s"`
}

func (c *KafkaService) Brokers() []string {
	return []string{fmt.Sprintf("%s:%s", c.Host, c.Port)}
}

// Load reads the YAML file at path, then applies environment overrides.
func Load(path string) (*OrderConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg OrderConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *OrderConfig) validate() error {
	if c.Redis.Driver != "redis" && c.Redis.Driver != "memory" {
		return fmt.Errorf("unknown cache driver %q", c.Redis.Driver)
	}
	if c.Cache.RecentLimit <= 0 {
		return fmt.Errorf("cache.recent_limit must be positive")
	}
	if c.Cache.CountTTL <= 0 || c.Cache.RecentTTL <= 0 || c.Cache.OrderTTL <= 0 {
		return fmt.Errorf("cache ttls must be positive")
	}
	return nil
}

func MustLoad() *OrderConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}
