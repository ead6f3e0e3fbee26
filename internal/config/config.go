package config

import (
	"fmt"
	"os"
	"time"
)

// StoreMode selects the scan record backend.
type StoreMode string

const (
	StoreFile     StoreMode = "file"     // local JSON cache
	StoreExternal StoreMode = "external" // remote state-holder service
	StorePostgres StoreMode = "postgres"
)

type Config struct {
	HTTPAddr      string // TAGMIND_HTTP_ADDR (default ":8080")
	NATSURL       string // TAGMIND_NATS_URL (optional, empty = no event bus)
	AuthToken     string // TAGMIND_AUTH_TOKEN (optional, empty = auth disabled)
	RemindersFile string // TAGMIND_REMINDERS_FILE (required)

	Store       StoreMode // TAGMIND_STORE (default "file")
	StoreFile   string    // TAGMIND_STORE_FILE (default "tagmind-records.json")
	StateURL    string    // TAGMIND_STATE_URL (required for external mode)
	StateToken  string    // TAGMIND_STATE_TOKEN (optional)
	DatabaseURL string    // TAGMIND_DATABASE_URL (required for postgres mode)

	// Snapshot settings
	SnapshotInterval   time.Duration // TAGMIND_SNAPSHOT_INTERVAL (default 0 = disabled)
	SnapshotS3Bucket   string        // TAGMIND_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // TAGMIND_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // TAGMIND_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // TAGMIND_SNAPSHOT_S3_KEY (default "tagmind/records.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		HTTPAddr:           envOrDefault("TAGMIND_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("TAGMIND_NATS_URL"),
		AuthToken:          os.Getenv("TAGMIND_AUTH_TOKEN"),
		RemindersFile:      os.Getenv("TAGMIND_REMINDERS_FILE"),
		Store:              StoreMode(envOrDefault("TAGMIND_STORE", string(StoreFile))),
		StoreFile:          envOrDefault("TAGMIND_STORE_FILE", "tagmind-records.json"),
		StateURL:           os.Getenv("TAGMIND_STATE_URL"),
		StateToken:         os.Getenv("TAGMIND_STATE_TOKEN"),
		DatabaseURL:        os.Getenv("TAGMIND_DATABASE_URL"),
		SnapshotS3Bucket:   os.Getenv("TAGMIND_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("TAGMIND_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("TAGMIND_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("TAGMIND_SNAPSHOT_S3_KEY", "tagmind/records.jsonl"),
	}

	if c.RemindersFile == "" {
		return nil, fmt.Errorf("TAGMIND_REMINDERS_FILE is required")
	}

	switch c.Store {
	case StoreFile:
	case StoreExternal:
		if c.StateURL == "" {
			return nil, fmt.Errorf("TAGMIND_STATE_URL is required for external store mode")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("TAGMIND_DATABASE_URL is required for postgres store mode")
		}
	default:
		return nil, fmt.Errorf("TAGMIND_STORE: unknown store mode %q", c.Store)
	}

	if intervalStr := os.Getenv("TAGMIND_SNAPSHOT_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TAGMIND_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
