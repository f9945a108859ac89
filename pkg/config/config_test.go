package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JOB_STORE", "memory")

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, "faq_job:", cfg.Store.KeyPrefix)
	assert.Equal(t, 5, cfg.Pipeline.RetryAttempts)
	assert.Equal(t, 4*time.Second, cfg.Pipeline.RetryBase)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.RetryMax)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.PageDelay)
	assert.Equal(t, 3*time.Second, cfg.Pipeline.StageDelay)
	assert.Equal(t, 60*time.Second, cfg.Renderer.NavTimeout)
	assert.Equal(t, 20*time.Second, cfg.Renderer.SettleWait)
	assert.Equal(t, "mistral", cfg.LLM.Extract.Provider)
	assert.Equal(t, "mistral-medium", cfg.LLM.Synth.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Synth.Temperature, 1e-9)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JOB_STORE=sqlite\nMISTRAL_API_KEY=from-file\n"), 0o600))

	t.Setenv("SYNTH_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PIPELINE_STAGE_DELAY", "0s")
	t.Setenv("JOB_STORE", "")
	os.Unsetenv("JOB_STORE")
	t.Setenv("MISTRAL_API_KEY", "")
	os.Unsetenv("MISTRAL_API_KEY")

	cfg, err := config.Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "from-file", cfg.LLM.Extract.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Synth.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Synth.APIKey)
	assert.Zero(t, cfg.Pipeline.StageDelay)
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("JOB_STORE", "cassandra")

	_, err := config.Load(noEnvFile(t))
	assert.Error(t, err)
}

func TestLoad_RejectsS3WithoutBucket(t *testing.T) {
	t.Setenv("JOB_STORE", "memory")
	t.Setenv("STORAGE_MODE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := config.Load(noEnvFile(t))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("JOB_STORE", "memory")
	t.Setenv("EXTRACT_LLM_PROVIDER", "cohere")

	_, err := config.Load(noEnvFile(t))
	assert.Error(t, err)
}
