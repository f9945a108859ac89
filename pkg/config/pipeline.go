package config

import "time"

// RendererConfig configures headless page capture.
type RendererConfig struct {
	Headless    bool
	UserAgent   string
	NavTimeout  time.Duration
	SettleWait  time.Duration
	ChromePath  string
	PageTimeout time.Duration
}

func loadRendererConfig() RendererConfig {
	nav := getEnvDuration("RENDER_NAV_TIMEOUT", 60*time.Second)
	settle := getEnvDuration("RENDER_SETTLE_WAIT", 20*time.Second)
	return RendererConfig{
		Headless:   getEnvBool("RENDER_HEADLESS", true),
		UserAgent:  getEnv("RENDER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		NavTimeout: nav,
		SettleWait: settle,
		ChromePath: getEnv("RENDER_CHROME_PATH", ""),
		// Bound on a whole sub-page render, navigation plus settle.
		PageTimeout: getEnvDuration("RENDER_PAGE_TIMEOUT", nav+settle+15*time.Second),
	}
}

// PipelineConfig holds pacing and retry settings.
type PipelineConfig struct {
	PageDelay     time.Duration
	StageDelay    time.Duration
	RetryAttempts int
	RetryBase     time.Duration
	RetryMax      time.Duration
	KeepArtifacts bool
	DefaultCount  int
	DefaultLang   string
}

func loadPipelineConfig() PipelineConfig {
	return PipelineConfig{
		PageDelay:     getEnvDuration("PIPELINE_PAGE_DELAY", 2*time.Second),
		StageDelay:    getEnvDuration("PIPELINE_STAGE_DELAY", 3*time.Second),
		RetryAttempts: getEnvInt("PIPELINE_RETRY_ATTEMPTS", 5),
		RetryBase:     getEnvDuration("PIPELINE_RETRY_BASE", 4*time.Second),
		RetryMax:      getEnvDuration("PIPELINE_RETRY_MAX", 60*time.Second),
		KeepArtifacts: getEnvBool("PIPELINE_KEEP_ARTIFACTS", false),
		DefaultCount:  getEnvInt("PIPELINE_DEFAULT_FAQ_COUNT", 10),
		DefaultLang:   getEnv("PIPELINE_DEFAULT_LANGUAGE", "en"),
	}
}

// JobsConfig bounds the detached executions.
type JobsConfig struct {
	MaxConcurrent   int
	ShutdownTimeout time.Duration
}

func loadJobsConfig() JobsConfig {
	return JobsConfig{
		MaxConcurrent:   getEnvInt("JOBS_MAX_CONCURRENT", 4),
		ShutdownTimeout: getEnvDuration("JOBS_SHUTDOWN_TIMEOUT", 5*time.Minute),
	}
}

// NotifxConfig configures completion e-mails.
type NotifxConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	AWSRegion   string
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", getEnv("EMAIL_FROM_ADDRESS", "noreply@faqgen.local")),
		FromName:    getEnv("NOTIFX_FROM_NAME", getEnv("EMAIL_FROM_NAME", "FAQ Generator")),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}
