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
	Lists  ListsConfig  `yaml:"lists" mapstructure:"lists"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ListsConfig locates the reference workbook and describes its layout.
type ListsConfig struct {
	Path           string `yaml:"path" mapstructure:"path"`
	WhitelistSheet string `yaml:"whitelist_sheet" mapstructure:"whitelist_sheet"`
	BlacklistSheet string `yaml:"blacklist_sheet" mapstructure:"blacklist_sheet"`
	NameColumn     string `yaml:"name_column" mapstructure:"name_column"`
	CategoryColumn string `yaml:"category_column" mapstructure:"category_column"`
	NotesColumn    string `yaml:"notes_column" mapstructure:"notes_column"`
}

// MatchConfig holds fuzzy-matching defaults applied when a command or
// request does not override them.
type MatchConfig struct {
	Threshold             float64 `yaml:"threshold" mapstructure:"threshold"`
	MaxResults            int     `yaml:"max_results" mapstructure:"max_results"`
	IncludeBelowThreshold bool    `yaml:"include_below_threshold" mapstructure:"include_below_threshold"`
}

// BatchConfig configures batch lookups.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// StoreConfig configures the lookup audit log. An empty path disables it.
type StoreConfig struct {
	AuditPath string `yaml:"audit_path" mapstructure:"audit_path"`
}

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
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
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("lists.whitelist_sheet", "Whitelist")
	v.SetDefault("lists.blacklist_sheet", "Blacklist")
	v.SetDefault("lists.name_column", "Company Name")
	v.SetDefault("lists.category_column", "Category")
	v.SetDefault("lists.notes_column", "Notes")
	v.SetDefault("match.threshold", 80.0)
	v.SetDefault("match.max_results", 5)
	v.SetDefault("match.include_below_threshold", true)
	v.SetDefault("batch.concurrency", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the configuration for a given command mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		problems = append(problems, "match.threshold must be between 0 and 100")
	}
	if c.Match.MaxResults < 1 || c.Match.MaxResults > 20 {
		problems = append(problems, "match.max_results must be between 1 and 20")
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 50 {
		problems = append(problems, "batch.concurrency must be between 1 and 50")
	}

	switch mode {
	case "lookup", "batch":
		if c.Lists.Path == "" {
			problems = append(problems, "lists.path is required")
		}
	case "serve":
		if c.Lists.Path == "" {
			problems = append(problems, "lists.path is required")
		}
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
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
