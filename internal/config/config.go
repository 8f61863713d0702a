package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Embed     EmbedConfig     `yaml:"embed" mapstructure:"embed"`
	Translate TranslateConfig `yaml:"translate" mapstructure:"translate"`
	Geo       GeoConfig       `yaml:"geo" mapstructure:"geo"`
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Gate      GateConfig      `yaml:"gate" mapstructure:"gate"`
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds generative model settings for the extraction prompts.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// EmbedConfig holds sentence-embedding API settings.
type EmbedConfig struct {
	Key        string  `yaml:"key" mapstructure:"key"`
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	Model      string  `yaml:"model" mapstructure:"model"`
	BatchSize  int     `yaml:"batch_size" mapstructure:"batch_size"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// TranslateConfig holds translation API settings.
type TranslateConfig struct {
	Key        string  `yaml:"key" mapstructure:"key"`
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// GeoConfig configures the offline location database.
type GeoConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	HomeCountry  string `yaml:"home_country" mapstructure:"home_country"`
}

// ClassifyConfig configures the few-shot incentive classifier.
type ClassifyConfig struct {
	Threshold            float64 `yaml:"threshold" mapstructure:"threshold"`
	DirectWeight         float64 `yaml:"direct_weight" mapstructure:"direct_weight"`
	ContextWeight        float64 `yaml:"context_weight" mapstructure:"context_weight"`
	AuditLog             string  `yaml:"audit_log" mapstructure:"audit_log"`
	TaxonomyPath         string  `yaml:"taxonomy_path" mapstructure:"taxonomy_path"`
	HomeofficeORDetector bool    `yaml:"homeoffice_or_detector" mapstructure:"homeoffice_or_detector"`
}

// GateConfig sizes the shared accelerator memory budget and the per-model
// weights claimed against it. Defaults force strict alternation between the
// generative and embedding models.
type GateConfig struct {
	BudgetMiB     int64  `yaml:"budget_mib" mapstructure:"budget_mib"`
	GenerativeMiB int64  `yaml:"generative_mib" mapstructure:"generative_mib"`
	EmbeddingMiB  int64  `yaml:"embedding_mib" mapstructure:"embedding_mib"`
	Scope         string `yaml:"scope" mapstructure:"scope"` // "record" or "batch"
}

// SourceConfig configures the source-record provider.
type SourceConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INCENTIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "incentives.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 400)
	v.SetDefault("embed.base_url", "https://api.jina.ai/v1")
	v.SetDefault("embed.model", "jina-embeddings-v3")
	v.SetDefault("embed.batch_size", 32)
	v.SetDefault("embed.rate_per_sec", 4)
	v.SetDefault("translate.base_url", "https://api-free.deepl.com/v2")
	v.SetDefault("translate.rate_per_sec", 2)
	v.SetDefault("geo.database_path", "countries+states+cities.json")
	v.SetDefault("geo.home_country", "Germany")
	v.SetDefault("classify.threshold", 0.45)
	v.SetDefault("classify.direct_weight", 0.8)
	v.SetDefault("classify.context_weight", 0.2)
	v.SetDefault("classify.audit_log", "classification_audit.csv")
	v.SetDefault("classify.homeoffice_or_detector", true)
	v.SetDefault("gate.budget_mib", 8192)
	v.SetDefault("gate.generative_mib", 6500)
	v.SetDefault("gate.embedding_mib", 2000)
	v.SetDefault("gate.scope", "record")
	v.SetDefault("source.path", "jobs.jsonl")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is complete for the given command
// mode. Problems are accumulated so the operator sees everything that is
// missing at once.
func (c *Config) Validate(mode string) error {
	var problems []string

	require := func(value, key string) {
		if value == "" {
			problems = append(problems, key+" is required")
		}
	}

	switch mode {
	case "migrate":
		require(c.Store.DatabaseURL, "store.database_url")
	case "run":
		require(c.Store.DatabaseURL, "store.database_url")
		require(c.Anthropic.Key, "anthropic.key")
		require(c.Embed.Key, "embed.key")
		require(c.Geo.DatabasePath, "geo.database_path")
		if c.Classify.Threshold <= 0 || c.Classify.Threshold >= 1 {
			problems = append(problems, "classify.threshold must be between 0 and 1")
		}
		if c.Gate.GenerativeMiB > c.Gate.BudgetMiB {
			problems = append(problems, "gate.generative_mib must not exceed gate.budget_mib")
		}
		if c.Gate.EmbeddingMiB > c.Gate.BudgetMiB {
			problems = append(problems, "gate.embedding_mib must not exceed gate.budget_mib")
		}
		if c.Gate.Scope != "record" && c.Gate.Scope != "batch" {
			problems = append(problems, "gate.scope must be \"record\" or \"batch\"")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
