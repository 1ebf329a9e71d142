package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AuthSecret      string
	AuthTokenTTL    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	GatewayAddress   string
	GatewayKeyID     string
	GatewayKeySecret string
	GatewayCurrency  string
	GatewayTimeout   time.Duration

	CatalogTimeout    time.Duration
	LookupConcurrency int

	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxWorkers      int

	TraceSampleRatio float64
}

const (
	defaultRunAddress         = ":8080"
	defaultAuthSecret         = "change-me-in-production"
	defaultAuthTokenTTL       = 24 * time.Hour
	defaultShutdownTimeout    = 10 * time.Second
	defaultGatewayCurrency    = "INR"
	defaultGatewayTimeout     = 10 * time.Second
	defaultCatalogTimeout     = 3 * time.Second
	defaultLookupConcurrency  = 8
	defaultKafkaTopic         = "orders"
	defaultOutboxPollInterval = 2 * time.Second
	defaultOutboxBatchSize    = 64
	defaultOutboxWorkers      = 2
	defaultTraceSampleRatio   = 1.0
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		AuthSecret:         getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthTokenTTL:       getDuration(lookup, "AUTH_TOKEN_TTL", defaultAuthTokenTTL),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		GatewayAddress:     getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewayKeyID:       getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret:   getString(lookup, "GATEWAY_KEY_SECRET", ""),
		GatewayCurrency:    getString(lookup, "GATEWAY_CURRENCY", defaultGatewayCurrency),
		GatewayTimeout:     getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		CatalogTimeout:     getDuration(lookup, "CATALOG_TIMEOUT", defaultCatalogTimeout),
		LookupConcurrency:  getInt(lookup, "CATALOG_LOOKUP_CONCURRENCY", defaultLookupConcurrency),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		OutboxPollInterval: getDuration(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval),
		OutboxBatchSize:    getInt(lookup, "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
		OutboxWorkers:      getInt(lookup, "OUTBOX_WORKERS", defaultOutboxWorkers),
		TraceSampleRatio:   getFloat(lookup, "TRACE_SAMPLE_RATIO", defaultTraceSampleRatio),
	}

	fs := flag.NewFlagSet("orderservice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokers            = getString(lookup, "KAFKA_BROKERS", "")
		logLevel           = getString(lookup, "LOG_LEVEL", "info")
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		catalogTimeoutStr  = cfg.CatalogTimeout.String()
		pollIntervalStr    = cfg.OutboxPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayCurrency, "currency", cfg.GatewayCurrency, "Currency of payment sessions")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Payment gateway request timeout")
	fs.StringVar(&catalogTimeoutStr, "catalog-timeout", catalogTimeoutStr, "Deadline for resolving cart products")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "Comma separated Kafka brokers, empty disables the outbox relay")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for order events")
	fs.StringVar(&pollIntervalStr, "outbox-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.OutboxBatchSize, "outbox-batch", cfg.OutboxBatchSize, "Maximum events per outbox batch")
	fs.IntVar(&cfg.OutboxWorkers, "outbox-workers", cfg.OutboxWorkers, "Number of concurrent outbox publishers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.CatalogTimeout, err = time.ParseDuration(catalogTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid catalog timeout: %w", err)
	}

	if cfg.OutboxPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid outbox interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokers)

	if cfg.AuthSecret, err = readSecretFile(lookup, "AUTH_SECRET_FILE", cfg.AuthSecret); err != nil {
		return nil, err
	}

	if cfg.GatewayKeySecret, err = readSecretFile(lookup, "GATEWAY_KEY_SECRET_FILE", cfg.GatewayKeySecret); err != nil {
		return nil, err
	}

	if cfg.AuthTokenTTL <= 0 {
		cfg.AuthTokenTTL = defaultAuthTokenTTL
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.CatalogTimeout <= 0 {
		cfg.CatalogTimeout = defaultCatalogTimeout
	}

	if cfg.LookupConcurrency <= 0 {
		cfg.LookupConcurrency = defaultLookupConcurrency
	}

	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaultOutboxBatchSize
	}

	if cfg.OutboxWorkers <= 0 {
		cfg.OutboxWorkers = defaultOutboxWorkers
	}

	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaultOutboxPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TraceSampleRatio < 0 || cfg.TraceSampleRatio > 1 {
		cfg.TraceSampleRatio = defaultTraceSampleRatio
	}

	cfg.GatewayCurrency = strings.ToUpper(strings.TrimSpace(cfg.GatewayCurrency))
	if cfg.GatewayCurrency == "" {
		cfg.GatewayCurrency = defaultGatewayCurrency
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

// RelayEnabled reports whether order events should be published to Kafka.
func (c *Config) RelayEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func readSecretFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	return strings.TrimSpace(string(content)), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
