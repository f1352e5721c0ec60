package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ParkedStoreMongo  = "mongo"
	ParkedStoreMemory = "memory"

	OrderSinkHTTP  = "http"
	OrderSinkKafka = "kafka"
)

type Config struct {
	HTTPPort           string
	GRPCPort           string
	BackendURL         string
	MongoURI           string
	MongoDBName        string
	RedisAddr          string
	RedisPassword      string
	StoreID            string
	ParkedStore        string
	OrderSink          string
	KafkaBrokers       []string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string
	Env                string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		GRPCPort:           getEnv("GRPC_PORT", "50060"),
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:8081"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "cashier"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		StoreID:            getEnv("STORE_ID", "default"),
		ParkedStore:        strings.ToLower(getEnv("PARKED_STORE", ParkedStoreMongo)),
		OrderSink:          strings.ToLower(getEnv("ORDER_SINK", OrderSinkHTTP)),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_BYTES", 1<<20)),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Env:                getEnv("APP_ENV", "development"),
	}

	switch cfg.ParkedStore {
	case ParkedStoreMongo, ParkedStoreMemory:
	default:
		return nil, fmt.Errorf("unsupported PARKED_STORE %q", cfg.ParkedStore)
	}
	switch cfg.OrderSink {
	case OrderSinkHTTP:
	case OrderSinkKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when ORDER_SINK=kafka")
		}
	default:
		return nil, fmt.Errorf("unsupported ORDER_SINK %q", cfg.OrderSink)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
