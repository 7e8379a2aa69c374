// Package config はバッチ処理用のYAML設定ファイルの読み込みを提供します。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	portfoliousecase "stock_buddy/internal/feature/portfolio/usecase"
)

// BatchConfig はバッチプロセス（cmd/batch）の設定です。
type BatchConfig struct {
	// IngestCron は日次株価取り込みのcron式です（robfig/cron形式）。
	IngestCron string `yaml:"ingest_cron"`
	// SafetyCron は安全ルール巡回のcron式です。
	SafetyCron string `yaml:"safety_cron"`
	// IndexSymbol はベータ計算の基準となる市場指数のシンボルです。
	IndexSymbol string `yaml:"index_symbol"`
	// ExtraSymbols は銘柄マスタに加えて常に取り込む銘柄です。
	ExtraSymbols []string `yaml:"extra_symbols"`

	// Safety は安全ルールのしきい値です。
	Safety SafetyConfig `yaml:"safety"`
}

// SafetyConfig は安全ルールのしきい値設定です。
type SafetyConfig struct {
	MaxConcentration float64 `yaml:"max_concentration"`
	MinHoldings      int     `yaml:"min_holdings"`
	MaxPortfolioBeta float64 `yaml:"max_portfolio_beta"`
}

// Load はYAMLファイルから設定を読み込み、未設定の項目にデフォルト値を補います。
func Load(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg BatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults は未設定の項目にデフォルト値を補います。
func (c *BatchConfig) applyDefaults() {
	if c.IngestCron == "" {
		// 平日の朝7時（東証の取引開始前）
		c.IngestCron = "0 7 * * 1-5"
	}
	if c.SafetyCron == "" {
		// 取り込み後の朝8時
		c.SafetyCron = "0 8 * * 1-5"
	}
	if c.IndexSymbol == "" {
		c.IndexSymbol = "^N225"
	}
	def := portfoliousecase.DefaultThresholds()
	if c.Safety.MaxConcentration <= 0 {
		c.Safety.MaxConcentration = def.MaxConcentration
	}
	if c.Safety.MinHoldings <= 0 {
		c.Safety.MinHoldings = def.MinHoldings
	}
	if c.Safety.MaxPortfolioBeta <= 0 {
		c.Safety.MaxPortfolioBeta = def.MaxPortfolioBeta
	}
}

// Validate は設定値の整合性を確認します。
func (c *BatchConfig) Validate() error {
	if c.Safety.MaxConcentration > 1 {
		return fmt.Errorf("safety.max_concentration must be a ratio in (0,1], got %v", c.Safety.MaxConcentration)
	}
	return nil
}

// Thresholds は設定値をusecaseのしきい値型に変換します。
func (c *BatchConfig) Thresholds() portfoliousecase.Thresholds {
	return portfoliousecase.Thresholds{
		MaxConcentration: c.Safety.MaxConcentration,
		MinHoldings:      c.Safety.MinHoldings,
		MaxPortfolioBeta: c.Safety.MaxPortfolioBeta,
	}
}
