package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port          string
	GitHubToken   string
	GitHubBaseURL string
	WebhookSecret string
	DatabaseURL   string
	RedisAddr     string
	DedupeTTL     time.Duration
	KafkaBrokers  string
	KafkaTopic    string
	LogLevel      string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          pick(os.Getenv("PORT"), "8080"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubBaseURL: os.Getenv("GITHUB_BASE_URL"),
		WebhookSecret: os.Getenv("GITHUB_WEBHOOK_SECRET"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:    pick(os.Getenv("KAFKA_MERGE_TOPIC"), "staticman.merge"),
		LogLevel:      pick(os.Getenv("LOG_LEVEL"), "info"),
	}
	if cfg.GitHubToken == "" {
		return cfg, errors.New("GITHUB_TOKEN required")
	}
	if cfg.KafkaBrokers == "" {
		return cfg, errors.New("KAFKA_BROKERS required")
	}

	ttl, err := time.ParseDuration(pick(os.Getenv("DEDUPE_TTL"), "24h"))
	if err != nil {
		return cfg, fmt.Errorf("DEDUPE_TTL: %w", err)
	}
	cfg.DedupeTTL = ttl
	return cfg, nil
}

func pick(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
