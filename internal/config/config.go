package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/firm-profiler/internal/profile"
)

// Config holds the full application configuration.
type Config struct {
	Profile ProfileConfig `yaml:"profile" mapstructure:"profile"`
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ProfileConfig configures the classification engine.
type ProfileConfig struct {
	Weights     profile.WeightSet `yaml:"weights" mapstructure:"weights"`
	Concurrency int               `yaml:"concurrency" mapstructure:"concurrency"`
	RulesFile   string            `yaml:"rules_file" mapstructure:"rules_file"`
}

// InputConfig names the spreadsheet columns that carry each metric.
type InputConfig struct {
	RevenueColumn string `yaml:"revenue_column" mapstructure:"revenue_column"`
	ColabColumn   string `yaml:"colab_column" mapstructure:"colab_column"`
	LawsuitColumn string `yaml:"lawsuit_column" mapstructure:"lawsuit_column"`
	Encoding      string `yaml:"encoding" mapstructure:"encoding"`
	Delimiter     string `yaml:"delimiter" mapstructure:"delimiter"`
}

// OutputConfig configures result export.
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"`
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port         int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst    int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxRecords   int      `yaml:"max_records" mapstructure:"max_records"`
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputFormats lists the accepted output.format values.
var OutputFormats = []string{"xlsx", "csv", "json", "yaml", "table"}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROFILER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("profile.weights.revenue", 1)
	v.SetDefault("profile.weights.colab", 1)
	v.SetDefault("profile.weights.lawsuit", 1)
	v.SetDefault("profile.concurrency", 8)
	v.SetDefault("profile.rules_file", "")
	v.SetDefault("input.revenue_column", "receita")
	v.SetDefault("input.colab_column", "colaboradores")
	v.SetDefault("input.lawsuit_column", "processos")
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("input.delimiter", ",")
	v.SetDefault("output.format", "xlsx")
	v.SetDefault("output.sheet_name", "Perfilamento")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.max_records", 10000)
	v.SetDefault("server.cors_origins", []string{"*"})

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

// Validate checks the settings a command depends on. mode is one of
// "classify", "serve" or "rules".
func (c *Config) Validate(mode string) error {
	var errs []string

	w := c.Profile.Weights
	if err := w.Validate(); err != nil {
		errs = append(errs, err.Error())
	} else if w.Revenue+w.Colab+w.Lawsuit == 0 {
		errs = append(errs, "profile.weights: at least one weight must be nonzero")
	}
	if c.Profile.Concurrency < 1 || c.Profile.Concurrency > 256 {
		errs = append(errs, "profile.concurrency must be between 1 and 256")
	}

	switch mode {
	case "classify":
		if !slices.Contains(OutputFormats, c.Output.Format) {
			errs = append(errs, fmt.Sprintf("output.format must be one of %s (got %q)", strings.Join(OutputFormats, ", "), c.Output.Format))
		}
		if c.Input.RevenueColumn == "" || c.Input.ColabColumn == "" || c.Input.LawsuitColumn == "" {
			errs = append(errs, "input: revenue, colab and lawsuit columns are required")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port must be > 0 and <= 65535 (got %d)", c.Server.Port))
		}
		if c.Server.MaxRecords < 1 {
			errs = append(errs, "server.max_records must be >= 1")
		}
		if c.Server.RateLimitRPS < 0 {
			errs = append(errs, "server.rate_limit_rps must be >= 0")
		}
	case "rules":
	default:
		errs = append(errs, fmt.Sprintf("unknown mode %q", mode))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
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
