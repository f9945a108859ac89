package config

import (
	"fmt"
	"time"
)

// StoreConfig selects the job result store.
type StoreConfig struct {
	// Driver is one of memory, redis, sqlite, postgres
	Driver        string
	TTL           time.Duration
	KeyPrefix     string
	SweepSchedule string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Driver:        getEnv("JOB_STORE", "redis"),
		TTL:           getEnvDuration("JOB_TTL", 24*time.Hour),
		KeyPrefix:     getEnv("JOB_KEY_PREFIX", "faq_job:"),
		SweepSchedule: getEnv("JOB_SWEEP_SCHEDULE", "@every 15m"),
	}
}

// RedisConfig mirrors the REDIS_* variables.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

// DatabaseConfig is used by the sqlite and postgres stores.
type DatabaseConfig struct {
	SQLitePath   string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// PostgresDSN renders a lib/pq connection string.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		SQLitePath:   getEnv("SQLITE_PATH", "faq_jobs.db"),
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnvInt("DB_PORT", 5432),
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", "faqgen"),
		SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}
}

// StorageConfig selects where per-job artifacts are written.
type StorageConfig struct {
	Mode      string
	LocalPath string
	S3Bucket  string
	S3Prefix  string
	AWSRegion string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      getEnv("STORAGE_MODE", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./artifacts"),
		S3Bucket:  getEnv("S3_BUCKET", ""),
		S3Prefix:  getEnv("S3_PREFIX", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
	}
}
