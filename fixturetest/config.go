package fixturetest

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/syssam/fixture/dialect"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig.
const EnvPrefix = "FIXTURE"

// Config is the configuration of a test database.
type Config struct {
	// Dialect is one of dialect.Postgres, dialect.MySQL or dialect.SQLite.
	Dialect string `mapstructure:"dialect"`
	// DSN is the data source name passed to the database/sql driver.
	DSN string `mapstructure:"dsn"`
	// Models is an optional YAML file of model descriptors.
	Models string `mapstructure:"models"`
	// Seed of the faker. Zero picks a random seed.
	Seed uint64    `mapstructure:"seed"`
	Log  LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger of the fixture client.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Defaults: an in-memory SQLite database with foreign keys enforced.
const (
	DefaultDialect = dialect.SQLite
	DefaultDSN     = "file::memory:?_pragma=foreign_keys(1)"
)

var keys = []string{"dialect", "dsn", "models", "seed", "log.level", "log.format"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", DefaultDialect)
	v.SetDefault("dsn", DefaultDSN)
	v.SetDefault("models", "")
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains([]string{dialect.Postgres, dialect.MySQL, dialect.SQLite}, c.Dialect) {
		return fmt.Errorf("fixturetest: dialect must be one of postgres, mysql, sqlite (got: %q)", c.Dialect)
	}
	if c.DSN == "" {
		return errors.New("fixturetest: dsn is required")
	}
	if !slices.Contains([]string{"console", "json"}, c.Log.Format) {
		return fmt.Errorf("fixturetest: log.format must be one of console, json (got: %q)", c.Log.Format)
	}
	return nil
}

// LoaderConfig holds optional file locations of LoadConfig.
type LoaderConfig struct {
	ConfigFile string // YAML config file, ignored if missing
	EnvFile    string // .env file, ignored if missing
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets the config file path. Default is "fixture.yml".
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets the .env file path. Default is ".env".
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads the configuration from, in increasing precedence: the
// defaults, the config file, the .env file and FIXTURE_* environment
// variables (FIXTURE_LOG_LEVEL for log.level).
func LoadConfig(opts ...LoaderOption) (*Config, error) {
	lc := LoaderConfig{ConfigFile: "fixture.yml", EnvFile: ".env"}
	for _, opt := range opts {
		opt(&lc)
	}
	v := viper.New()
	setDefaults(v)
	if exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("fixturetest: read config %s: %w", lc.ConfigFile, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if exists(lc.EnvFile) {
		// The .env file does not mutate the process environment, and real
		// environment variables win over it.
		env, err := godotenv.Read(lc.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("fixturetest: read env %s: %w", lc.EnvFile, err)
		}
		for _, key := range keys {
			name := envName(key)
			if _, ok := os.LookupEnv(name); ok {
				continue
			}
			if val, ok := env[name]; ok {
				v.Set(key, val)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("fixturetest: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envName returns the environment variable of a config key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
