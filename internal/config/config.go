package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is unset. There is no
// default signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	Env               string
	MySQLDSN          string
	DBMaxOpenConns    int
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	SessionRevocation bool
	LogLevel          string
	SeedRoles         []string
	ResetDB           bool
}

// Load builds Config from the environment, reading a .env file first when
// one is present. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		MySQLDSN:          getEnv("MYSQL_DSN", "sqluser:password@tcp(localhost:3306)/authservice?charset=utf8mb4&parseTime=True&loc=Local"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SessionRevocation: getEnvBool("SESSION_REVOCATION", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SeedRoles:         getEnvList("SEED_ROLES", []string{"admin", "user"}),
		ResetDB:           getEnvBool("RESET_DB", false),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// IsProduction reports whether session cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
