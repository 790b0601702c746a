package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Snapshot SnapshotConfig
	Storage  StorageConfig
	GCP      GCPConfig
	GCS      GCSConfig
	Scoring  ScoringConfig
	PubSub   PubSubConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"SHOPSIGHT_APP_ENV" required:"true"`
	Port     string `envconfig:"SHOPSIGHT_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"SHOPSIGHT_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SnapshotConfig controls how durable blobs are staged as local SQLite files.
type SnapshotConfig struct {
	WorkDir   string `envconfig:"SHOPSIGHT_SNAPSHOT_WORK_DIR"`
	ObjectKey string `envconfig:"SHOPSIGHT_SNAPSHOT_OBJECT_KEY" default:"shop.db"`
}

// StorageConfig selects the durable blob backend.
type StorageConfig struct {
	Backend  string `envconfig:"SHOPSIGHT_STORAGE_BACKEND" default:"gcs"`
	LocalDir string `envconfig:"SHOPSIGHT_STORAGE_LOCAL_DIR" default:"./data"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendGCS, StorageBackendLocal:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SHOPSIGHT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SHOPSIGHT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"SHOPSIGHT_GCS_BUCKET"`
}

// ScoringConfig describes how the external scoring job is launched.
// Command empty means the job is not configured.
type ScoringConfig struct {
	Command          string        `envconfig:"SHOPSIGHT_SCORING_COMMAND"`
	Args             []string      `envconfig:"SHOPSIGHT_SCORING_ARGS"`
	WorkDir          string        `envconfig:"SHOPSIGHT_SCORING_WORK_DIR"`
	Timeout          time.Duration `envconfig:"SHOPSIGHT_SCORING_TIMEOUT" default:"0"`
	PipelineInterval time.Duration `envconfig:"SHOPSIGHT_PIPELINE_INTERVAL" default:"24h"`
}

type PubSubConfig struct {
	Enabled      bool   `envconfig:"SHOPSIGHT_PUBSUB_ENABLED" default:"false"`
	ScoringTopic string `envconfig:"SHOPSIGHT_PUBSUB_SCORING_TOPIC" default:"scoring-events"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPSIGHT_CORS_ALLOWED_ORIGINS" default:"*"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"SHOPSIGHT_METRICS_ENABLED" default:"true"`
}
