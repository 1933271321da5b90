package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHIFTWATCH"

type Config struct {
	ServerPort int    `mapstructure:"server_port"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`

	DatabaseDbPath       string `mapstructure:"database_db_path"`
	DatabaseCacheAddress string `mapstructure:"database_cache_address"`
	DatabaseCachePort    int    `mapstructure:"database_cache_port"`

	EngineCrisisDepartment   string   `mapstructure:"engine_crisis_department"`
	EngineTimezone           string   `mapstructure:"engine_timezone"`
	EnginePositionDenylist   []string `mapstructure:"engine_position_denylist"`
	SuggestionsDedupePending bool     `mapstructure:"suggestions_dedupe_pending"`

	AdminPasswordHash   string        `mapstructure:"admin_password_hash"`
	CacheEmployeeTTL    time.Duration `mapstructure:"cache_employee_ttl"`
	EventsChannelPrefix string        `mapstructure:"events_channel_prefix"`
}

var defaults = map[string]any{
	"server_port":                8288,
	"log_level":                  "info",
	"log_format":                 "text",
	"database_db_path":           "data/shiftwatch.db",
	"database_cache_address":     "",
	"database_cache_port":        6379,
	"engine_crisis_department":   "Crisis Line",
	"engine_timezone":            "America/Chicago",
	"engine_position_denylist":   []string{},
	"suggestions_dedupe_pending": false,
	"admin_password_hash":        "",
	"cache_employee_ttl":         10 * time.Minute,
	"events_channel_prefix":      "shiftwatch:events:",
}

// InitConfig reads config.yaml (if present) and SHIFTWATCH_* environment
// variables on top of the defaults.
func InitConfig() (Config, error) {
	return Load(viper.New())
}

func Load(v *viper.Viper) (Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.ServerPort <= 0 {
		return fmt.Errorf("invalid server port: %d", c.ServerPort)
	}

	if c.DatabaseDbPath == "" {
		return errors.New("database path is empty")
	}

	if _, err := time.LoadLocation(c.EngineTimezone); err != nil {
		return fmt.Errorf("invalid engine timezone %q: %w", c.EngineTimezone, err)
	}

	return nil
}

// Location returns the zone used to anchor the Saturday-start week.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.EngineTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != "" && c.DatabaseCachePort > 0
}
