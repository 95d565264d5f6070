// Package config loads service settings from the environment, an optional .env
// file and command line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Backend struct {
	Port              int
	DatabaseURL       string
	JWTSecret         string
	JWTTTL            time.Duration
	PaymentServiceURL string
	RedisAddr         string
	CacheTTL          time.Duration
	KafkaBrokers      []string
	AdminAPIKey       string
}

type Payment struct {
	Port         int
	SuccessRate  float64
	Delay        time.Duration
	KafkaBrokers []string
}

// LoadBackend reads the catalog service settings. DATABASE_URL (or MONGODB_URI)
// and JWT_SECRET have no defaults and must be set.
func LoadBackend(flags *pflag.FlagSet) (*Backend, error) {
	v := newViper(flags)
	v.SetDefault("port", 5000)
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("payment_service_url", "http://localhost:5001")
	v.SetDefault("cache_ttl", "5m")
	bind(v, "port", "BACKEND_PORT", "PORT")
	bind(v, "database_url", "DATABASE_URL", "MONGODB_URI")
	bind(v, "jwt_secret", "JWT_SECRET")
	bind(v, "jwt_ttl", "JWT_TTL")
	bind(v, "payment_service_url", "PAYMENT_SERVICE_URL")
	bind(v, "redis_addr", "REDIS_ADDR")
	bind(v, "cache_ttl", "CACHE_TTL")
	bind(v, "kafka_brokers", "KAFKA_BROKERS")
	bind(v, "admin_api_key", "ADMIN_API_KEY")

	cfg := &Backend{
		Port:              v.GetInt("port"),
		DatabaseURL:       v.GetString("database_url"),
		JWTSecret:         v.GetString("jwt_secret"),
		JWTTTL:            v.GetDuration("jwt_ttl"),
		PaymentServiceURL: strings.TrimRight(v.GetString("payment_service_url"), "/"),
		RedisAddr:         v.GetString("redis_addr"),
		CacheTTL:          v.GetDuration("cache_ttl"),
		KafkaBrokers:      splitList(v.GetString("kafka_brokers")),
		AdminAPIKey:       v.GetString("admin_api_key"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if err := checkPort(cfg.Port); err != nil {
		return nil, err
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	return cfg, nil
}

// LoadDatabaseURL reads only the store connection string, for commands that
// touch the database without serving traffic.
func LoadDatabaseURL() (string, error) {
	v := newViper(nil)
	bind(v, "database_url", "DATABASE_URL", "MONGODB_URI")
	url := v.GetString("database_url")
	if url == "" {
		return "", fmt.Errorf("missing required configuration: DATABASE_URL")
	}
	return url, nil
}

// LoadPayment reads the payment simulator settings. Everything has a default.
func LoadPayment(flags *pflag.FlagSet) (*Payment, error) {
	v := newViper(flags)
	v.SetDefault("port", 5001)
	v.SetDefault("success_rate", 0.9)
	v.SetDefault("delay", "1s")
	bind(v, "port", "PAYMENT_PORT", "PORT")
	bind(v, "success_rate", "PAYMENT_SUCCESS_RATE")
	bind(v, "delay", "PAYMENT_DELAY")
	bind(v, "kafka_brokers", "KAFKA_BROKERS")

	cfg := &Payment{
		Port:         v.GetInt("port"),
		SuccessRate:  v.GetFloat64("success_rate"),
		Delay:        v.GetDuration("delay"),
		KafkaBrokers: splitList(v.GetString("kafka_brokers")),
	}
	if err := checkPort(cfg.Port); err != nil {
		return nil, err
	}
	if cfg.SuccessRate < 0 || cfg.SuccessRate > 1 {
		return nil, fmt.Errorf("PAYMENT_SUCCESS_RATE must be between 0 and 1, got %v", cfg.SuccessRate)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("PAYMENT_DELAY must not be negative, got %s", cfg.Delay)
	}
	return cfg, nil
}

func newViper(flags *pflag.FlagSet) *viper.Viper {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	v := viper.New()
	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			_ = v.BindPFlag("port", f)
		}
	}
	return v
}

func bind(v *viper.Viper, key string, envs ...string) {
	_ = v.BindEnv(append([]string{key}, envs...)...)
}

func checkPort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
