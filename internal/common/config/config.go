package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}
	Redis struct {
		Host string
		Port int
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	HTTP struct {
		Port int
	}
	Simulator struct {
		MinIntervalSeconds int
		MaxIntervalSeconds int
	}
	JWT struct {
		Secret string
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func LoadConfig() (*Config, error) {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "fraudx_user")
	cfg.Database.Password = getEnv("DB_PASSWORD", "fraudx_pass")
	cfg.Database.Name = getEnv("DB_NAME", "fraudx_db")

	cfg.Redis.Host = getEnv("REDIS_HOST", "127.0.0.1")
	cfg.Redis.Port = getEnvInt("REDIS_PORT", 6379)

	cfg.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
	cfg.RabbitMQ.Port = getEnvInt("RABBITMQ_PORT", 5672)
	cfg.RabbitMQ.User = getEnv("RABBITMQ_USER", "guest")
	cfg.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	cfg.HTTP.Port = getEnvInt("PORT", 3000)

	cfg.Simulator.MinIntervalSeconds = getEnvInt("SIM_MIN_INTERVAL", 5)
	cfg.Simulator.MaxIntervalSeconds = getEnvInt("SIM_MAX_INTERVAL", 60)

	cfg.JWT.Secret = getEnv("JWT_SECRET", "super-secret-key")

	if cfg.Simulator.MinIntervalSeconds <= 0 || cfg.Simulator.MaxIntervalSeconds < cfg.Simulator.MinIntervalSeconds {
		return nil, fmt.Errorf("invalid simulator interval bounds: min=%d max=%d",
			cfg.Simulator.MinIntervalSeconds, cfg.Simulator.MaxIntervalSeconds)
	}

	return cfg, nil
}

func (c *Config) Print() {
	fmt.Printf("📦 Database: %s@%s:%d/%s\n", c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name)
	fmt.Printf("🔴 Redis: %s:%d\n", c.Redis.Host, c.Redis.Port)
	fmt.Printf("🐇 RabbitMQ: amqp://%s@%s:%d\n", c.RabbitMQ.User, c.RabbitMQ.Host, c.RabbitMQ.Port)
	fmt.Printf("🌐 HTTP Port: %d\n", c.HTTP.Port)
	fmt.Printf("🎮 Simulator interval: %d-%ds\n", c.Simulator.MinIntervalSeconds, c.Simulator.MaxIntervalSeconds)
}
