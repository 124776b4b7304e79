package config

import (
	"tracker/internal/logger"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`
	SessionTTLHours      int    `mapstructure:"SESSION_TTL_HOURS"`
	CookieSecure         bool   `mapstructure:"COOKIE_SECURE"`
	MigrationsDir        string `mapstructure:"MIGRATIONS_DIR"`
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_DB_PATH", "data/tracker.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
		log.Info("No config file found, using environment and defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("failed to unmarshal config", err)
	}

	if config.ServerPort <= 0 || config.ServerPort > 65535 {
		return Config{}, log.Error("invalid server port", "port", config.ServerPort)
	}

	if config.SessionTTLHours <= 0 {
		return Config{}, log.Error("invalid session TTL", "hours", config.SessionTTLHours)
	}

	return config, nil
}
