// Package edgarcfg loads the typed configuration record shared by
// every component (spec.md section "Configuration surface"). It uses
// Viper so a config can come from a YAML/JSON file, environment
// variables (EDGAR_* prefix), or explicit overrides, and godotenv to
// pick up a local .env during development — mirroring the bootstrap
// pattern the pack's sibling financial-data-ingestion repo
// (penny-vault-pv-data) uses for its own Viper-backed config.
package edgarcfg

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ParserConfig controls the HTML Document Parser (spec.md §4.2, §6).
type ParserConfig struct {
	StreamingThreshold int64 `mapstructure:"streaming_threshold"` // bytes; default 50MB
	MaxDocumentSize    int64 `mapstructure:"max_document_size"`   // bytes
	DetectSections     bool  `mapstructure:"detect_sections"`
	TableExtraction    bool  `mapstructure:"table_extraction"`
	ExtractXBRL        bool  `mapstructure:"extract_xbrl"`
	UseCache           bool  `mapstructure:"use_cache"`
	CacheSize          int   `mapstructure:"cache_size"` // entries
}

// StandardizerConfig controls the Concept Standardizer (spec.md §4.6).
type StandardizerConfig struct {
	IndustryHint     string `mapstructure:"industry_hint"`
	MappingSchemaDir string `mapstructure:"mapping_schema_path"`
}

// StitcherConfig controls the Stitching Engine (spec.md §4.8, §4.9).
type StitcherConfig struct {
	DeriveQ4               bool `mapstructure:"derive_q4"`
	ApplySplitAdjustments  bool `mapstructure:"apply_split_adjustments"`
	PreferAnnual           bool `mapstructure:"prefer_annual"`
	Periods                int  `mapstructure:"periods"`
}

// QueryConfig controls default Entity Facts Query Engine behavior
// (spec.md §4.7).
type QueryConfig struct {
	MinConfidence    float64 `mapstructure:"min_confidence"`
	HighQualityOnly  bool    `mapstructure:"high_quality_only"`
}

// FetchConfig controls the Fetcher/identity collaborator (spec.md §6).
type FetchConfig struct {
	Identity       string        `mapstructure:"identity"` // "Name email@domain"
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
}

// Config is the full typed configuration record for a process using
// the EDGAR engine.
type Config struct {
	Parser       ParserConfig       `mapstructure:"parser"`
	Standardizer StandardizerConfig `mapstructure:"standardizer"`
	Stitcher     StitcherConfig     `mapstructure:"stitcher"`
	Query        QueryConfig        `mapstructure:"query"`
	Fetch        FetchConfig        `mapstructure:"fetch"`
}

// Default returns the recognized-key defaults from spec.md §6.
func Default() Config {
	return Config{
		Parser: ParserConfig{
			StreamingThreshold: 50 * 1024 * 1024,
			MaxDocumentSize:    500 * 1024 * 1024,
			DetectSections:     true,
			TableExtraction:    true,
			ExtractXBRL:        true,
			UseCache:           true,
			CacheSize:          2048,
		},
		Standardizer: StandardizerConfig{
			MappingSchemaDir: "schemas",
		},
		Stitcher: StitcherConfig{
			DeriveQ4:              true,
			ApplySplitAdjustments: true,
			PreferAnnual:          true,
			Periods:               8,
		},
		Query: QueryConfig{
			MinConfidence: 0,
		},
		Fetch: FetchConfig{
			RequestsPerSec: 10,
			FetchTimeout:   30 * time.Second,
		},
	}
}

// Load resolves a Config from (in ascending priority) built-in
// defaults, an optional config file, a local .env file, and
// EDGAR_-prefixed environment variables. configPath may be empty, in
// which case only defaults/env/.env apply.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load() // best-effort; absence of .env is not an error

	v := viper.New()
	v.SetEnvPrefix("EDGAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return cfg, err
	}
	return out, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("parser.streaming_threshold", cfg.Parser.StreamingThreshold)
	v.SetDefault("parser.max_document_size", cfg.Parser.MaxDocumentSize)
	v.SetDefault("parser.detect_sections", cfg.Parser.DetectSections)
	v.SetDefault("parser.table_extraction", cfg.Parser.TableExtraction)
	v.SetDefault("parser.extract_xbrl", cfg.Parser.ExtractXBRL)
	v.SetDefault("parser.use_cache", cfg.Parser.UseCache)
	v.SetDefault("parser.cache_size", cfg.Parser.CacheSize)
	v.SetDefault("standardizer.industry_hint", cfg.Standardizer.IndustryHint)
	v.SetDefault("standardizer.mapping_schema_path", cfg.Standardizer.MappingSchemaDir)
	v.SetDefault("stitcher.derive_q4", cfg.Stitcher.DeriveQ4)
	v.SetDefault("stitcher.apply_split_adjustments", cfg.Stitcher.ApplySplitAdjustments)
	v.SetDefault("stitcher.prefer_annual", cfg.Stitcher.PreferAnnual)
	v.SetDefault("stitcher.periods", cfg.Stitcher.Periods)
	v.SetDefault("query.min_confidence", cfg.Query.MinConfidence)
	v.SetDefault("query.high_quality_only", cfg.Query.HighQualityOnly)
	v.SetDefault("fetch.identity", cfg.Fetch.Identity)
	v.SetDefault("fetch.requests_per_sec", cfg.Fetch.RequestsPerSec)
	v.SetDefault("fetch.fetch_timeout", cfg.Fetch.FetchTimeout)
}
