package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Identity document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Derived tables.
	DataDir            string `mapstructure:"DATA_DIR"`
	TableBackend       string `mapstructure:"TABLE_BACKEND"`
	TableDBPath        string `mapstructure:"TABLE_DB_PATH"`
	TableCorruptPolicy string `mapstructure:"TABLE_CORRUPT_POLICY"`
	TableLock          string `mapstructure:"TABLE_LOCK"`
	LockTTLSeconds     int    `mapstructure:"LOCK_TTL_SECONDS"`

	// Redis configuration, only needed when TABLE_LOCK=redis.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	// Space separated names allowed to download the completed registrations list.
	ExportAllowedNames string `mapstructure:"EXPORT_ALLOWED_NAMES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "generador_horarios")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("TABLE_BACKEND", "csv")
	viper.SetDefault("TABLE_DB_PATH", "data/tablas.db")
	viper.SetDefault("TABLE_CORRUPT_POLICY", "fail")
	viper.SetDefault("TABLE_LOCK", "local")
	viper.SetDefault("LOCK_TTL_SECONDS", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 3)
	viper.SetDefault("EXPORT_ALLOWED_NAMES", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins, ",")
}

// ExportAllowList splits EXPORT_ALLOWED_NAMES on spaces.
func (c Config) ExportAllowList() []string {
	return strings.Fields(c.ExportAllowedNames)
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
