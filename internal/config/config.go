package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// PHYSIZ_ARENA_QUESTIONS.
const EnvPrefix = "PHYSIZ"

// Config holds all runtime configuration.
type Config struct {
	Catalog CatalogConfig
	Arena   ArenaConfig
	Log     LogConfig

	// File is the config file that was read, empty if none.
	File string
}

// CatalogConfig selects the question catalog.
type CatalogConfig struct {
	// Path to a catalog YAML file. Empty uses the embedded catalog.
	Path string
}

// ArenaConfig tunes quiz challenges.
type ArenaConfig struct {
	Questions        int     // questions per challenge. Default: 5
	DefaultTolerance float64 // numeric tolerance when a template sets none. Default: 0.1
	Seed             uint64  // 0 picks a random seed
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Env    string // development (console) or production (JSON)
	Output string // stderr, stdout, discard, or a file path
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Arena: ArenaConfig{
			Questions:        5,
			DefaultTolerance: 0.1,
		},
		Log: LogConfig{
			Level:  "info",
			Env:    "development",
			Output: "stderr",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and
// PHYSIZ_* environment variables, in increasing precedence. When path is
// empty, physiz.yaml is searched for in the working directory and the
// user config directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("physiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "physiz"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
		Arena: ArenaConfig{
			Questions:        v.GetInt("arena.questions"),
			DefaultTolerance: v.GetFloat64("arena.default_tolerance"),
			Seed:             v.GetUint64("arena.seed"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Env:    strings.ToLower(v.GetString("log.env")),
			Output: v.GetString("log.output"),
		},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("arena.questions", d.Arena.Questions)
	v.SetDefault("arena.default_tolerance", d.Arena.DefaultTolerance)
	v.SetDefault("arena.seed", d.Arena.Seed)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.env", d.Log.Env)
	v.SetDefault("log.output", d.Log.Output)
}

// Validate checks that the configuration is usable. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []string
	if c.Arena.Questions < 1 {
		errs = append(errs, fmt.Sprintf("arena.questions must be >= 1, got %d", c.Arena.Questions))
	}
	if c.Arena.DefaultTolerance < 0 {
		errs = append(errs, fmt.Sprintf("arena.default_tolerance must be >= 0, got %g", c.Arena.DefaultTolerance))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	switch c.Log.Env {
	case "development", "production":
	default:
		errs = append(errs, fmt.Sprintf("log.env must be development or production, got %q", c.Log.Env))
	}
	if c.Log.Output == "" {
		errs = append(errs, "log.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
