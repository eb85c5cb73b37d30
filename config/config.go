package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	GRPCPort        string        `mapstructure:"GRPC_PORT"`
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DBHost          string        `mapstructure:"DB_HOST"`
	DBPort          string        `mapstructure:"DB_PORT"`
	DBUser          string        `mapstructure:"DB_USER"`
	DBPassword      string        `mapstructure:"DB_PASSWORD"`
	DBName          string        `mapstructure:"DB_NAME"`
	DBLogLevel      string        `mapstructure:"DB_LOG_LEVEL"`
	SQLitePath      string        `mapstructure:"SQLITE_PATH"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	AccessSecret    string        `mapstructure:"ACCESS_SECRET"`
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
	DefaultTier     string        `mapstructure:"DEFAULT_TIER"`
	SnapshotTTL     time.Duration `mapstructure:"SNAPSHOT_TTL"`
	ToggleRateLimit int           `mapstructure:"TOGGLE_RATE_LIMIT"`
}

var keys = []string{
	"HTTP_PORT",
	"GRPC_PORT",
	"DB_DRIVER",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"DB_LOG_LEVEL",
	"SQLITE_PATH",
	"REDIS_ADDR",
	"ACCESS_SECRET",
	"ALLOWED_ORIGINS",
	"DEFAULT_TIER",
	"SNAPSHOT_TTL",
	"TOGGLE_RATE_LIMIT",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":50051")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SQLITE_PATH", "./data/learnpath.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("DEFAULT_TIER", "moderate")
	v.SetDefault("SNAPSHOT_TTL", "720h")
	v.SetDefault("TOGGLE_RATE_LIMIT", 60)

	v.AutomaticEnv()
	// Bind explicitly so values are visible without an app.env file.
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
