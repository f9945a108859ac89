package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read once at startup.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Renderer RendererConfig
	Pipeline PipelineConfig
	Jobs     JobsConfig
	Notifx   NotifxConfig
	Auth     AuthConfig
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, errx.Wrapf(err, errx.TypeValidation, "failed to load %s", f)
			}
		}
	}

	cfg := &Config{
		Server:   loadServerConfig(),
		Store:    loadStoreConfig(),
		Redis:    loadRedisConfig(),
		Database: loadDatabaseConfig(),
		Storage:  loadStorageConfig(),
		LLM:      loadLLMConfig(),
		Renderer: loadRendererConfig(),
		Pipeline: loadPipelineConfig(),
		Jobs:     loadJobsConfig(),
		Notifx:   loadNotifxConfig(),
		Auth:     loadAuthConfig(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot start.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "redis", "sqlite", "postgres":
	default:
		return errx.New("JOB_STORE must be one of memory, redis, sqlite, postgres", errx.TypeValidation).
			WithDetail("value", c.Store.Driver)
	}

	switch c.Storage.Mode {
	case "local", "s3":
	default:
		return errx.New("STORAGE_MODE must be local or s3", errx.TypeValidation).
			WithDetail("value", c.Storage.Mode)
	}
	if c.Storage.Mode == "s3" && c.Storage.S3Bucket == "" {
		return errx.New("S3_BUCKET is required when STORAGE_MODE=s3", errx.TypeValidation)
	}

	for _, role := range []LLMRole{c.LLM.Extract, c.LLM.Synth} {
		if err := role.validate(); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Environment helpers
// ============================================================================

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
