package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile はテスト用のYAML設定ファイルを一時ディレクトリに作成します。
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
ingest_cron: "30 6 * * 1-5"
safety_cron: "30 7 * * 1-5"
index_symbol: "^TPX"
extra_symbols:
  - "^N225"
safety:
  max_concentration: 0.25
  min_holdings: 5
  max_portfolio_beta: 1.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "30 6 * * 1-5", cfg.IngestCron)
	assert.Equal(t, "30 7 * * 1-5", cfg.SafetyCron)
	assert.Equal(t, "^TPX", cfg.IndexSymbol)
	assert.Equal(t, []string{"^N225"}, cfg.ExtraSymbols)
	assert.Equal(t, 0.25, cfg.Safety.MaxConcentration)
	assert.Equal(t, 5, cfg.Safety.MinHoldings)
	assert.Equal(t, 1.2, cfg.Safety.MaxPortfolioBeta)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `{}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0 7 * * 1-5", cfg.IngestCron)
	assert.Equal(t, "0 8 * * 1-5", cfg.SafetyCron)
	assert.Equal(t, "^N225", cfg.IndexSymbol)
	assert.Empty(t, cfg.ExtraSymbols)
	assert.Equal(t, 0.3, cfg.Safety.MaxConcentration)
	assert.Equal(t, 3, cfg.Safety.MinHoldings)
	assert.Equal(t, 1.5, cfg.Safety.MaxPortfolioBeta)
}

func TestLoad_PartialSafetyDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
safety:
  min_holdings: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Explicit value kept, the rest filled in
	assert.Equal(t, 10, cfg.Safety.MinHoldings)
	assert.Equal(t, 0.3, cfg.Safety.MaxConcentration)
	assert.Equal(t, 1.5, cfg.Safety.MaxPortfolioBeta)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "ingest_cron: [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestBatchConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		maxConcentration float64
		wantErr          bool
	}{
		{"valid ratio", 0.3, false},
		{"boundary value 1.0", 1.0, false},
		{"ratio above 1", 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &BatchConfig{}
			cfg.applyDefaults()
			cfg.Safety.MaxConcentration = tt.maxConcentration

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBatchConfig_Thresholds(t *testing.T) {
	t.Parallel()

	cfg := &BatchConfig{
		Safety: SafetyConfig{
			MaxConcentration: 0.4,
			MinHoldings:      4,
			MaxPortfolioBeta: 2.0,
		},
	}

	th := cfg.Thresholds()

	assert.Equal(t, 0.4, th.MaxConcentration)
	assert.Equal(t, 4, th.MinHoldings)
	assert.Equal(t, 2.0, th.MaxPortfolioBeta)
}
