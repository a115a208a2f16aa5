package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreDriverFile  = "file"
	StoreDriverRedis = "redis"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// StoreDriver selects where the case document lives: "file" (default)
	// or "redis" (whole document under one key).
	StoreDriver string
	CasesFile   string
	RedisAddr   string
	RedisKey    string

	// KafkaBrokers + KafkaTopicCase enable case events for the alerting
	// pipeline; empty disables the producer.
	KafkaBrokers   []string
	KafkaTopicCase string

	// AlarmServiceURL — if set, the service posts case-to-alarm links to the
	// Kuntur alarm service (POST /api/alertas/{id_alarma}/caso).
	AlarmServiceURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:         getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:        firstEnv("APP_PORT", "HTTP_PORT", "8050"),
		AppEnv:          getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StoreDriver:     getEnv("STORE_DRIVER", StoreDriverFile),
		CasesFile:       getEnv("CASES_FILE", "static/data/casos.json"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKey:        getEnv("REDIS_KEY", "kuntur:casos"),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicCase:  getEnv("KAFKA_TOPIC_CASE", ""),
		AlarmServiceURL: getEnv("ALARM_SERVICE_URL", ""),
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverFile:
		if c.CasesFile == "" {
			return fmt.Errorf("config: CASES_FILE is required for the file store")
		}
	case StoreDriverRedis:
		if c.RedisAddr == "" || c.RedisKey == "" {
			return fmt.Errorf("config: REDIS_ADDR and REDIS_KEY are required for the redis store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q (want file or redis)", c.StoreDriver)
	}
	return nil
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
