package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
	}
	DB struct {
		Driver       string
		SQLitePath   string
		User         string
		Password     string
		Name         string
		Host         string
		Port         string
		QueryTimeout time.Duration
	}
	MQ struct {
		User          string
		Password      string
		Vhost         string
		Host          string
		AmqpPort      string
		Exchange      string
		ExchangeType  string
		QueueName     string
		AuditConsumer bool
	}
	Log struct {
		Level string
		Dev   bool
	}
	// Seed.SampleUsers is off unless SEED_SAMPLE_USERS is set; demo
	// accounts with known passwords are never created implicitly.
	Seed struct {
		SampleUsers bool
	}

	Config struct {
		App  APP
		DB   DB
		MQ   MQ
		Log  Log
		Seed Seed
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", "usermanager"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", "3000"),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
	}
	db := DB{
		Driver:       strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		SQLitePath:   getEnv("SQLITE_PATH", "users.db"),
		User:         getEnv("POSTGRES_USER", ""),
		Password:     getEnv("POSTGRES_PASSWORD", ""),
		Name:         getEnv("POSTGRES_DB", ""),
		Host:         getEnv("POSTGRES_HOST", ""),
		Port:         getEnv("POSTGRES_PORT", "5432"),
		QueryTimeout: getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
	}
	mq := MQ{
		User:          getEnv("RABBITMQ_USER", ""),
		Password:      getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:         getEnv("RABBITMQ_VHOST", ""),
		Host:          getEnv("RABBITMQ_HOST", ""),
		AmqpPort:      getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:      getEnv("RABBITMQ_EXCHANGE", "users"),
		ExchangeType:  getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:     getEnv("RABBITMQ_QUEUE_NAME", "users.audit"),
		AuditConsumer: getEnvBool("RABBITMQ_AUDIT_CONSUMER", false),
	}
	lg := Log{
		Level: getEnv("LOG_LEVEL", ""),
		Dev:   getEnv("LOG_DEV", "") == "1",
	}

	return Config{
		App:  app,
		DB:   db,
		MQ:   mq,
		Log:  lg,
		Seed: Seed{SampleUsers: getEnvBool("SEED_SAMPLE_USERS", false)},
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.App.JWTSecret == "" {
		errs = append(errs, errors.New("SERVICE_JWT_SECRET is required"))
	}
	if p, err := strconv.Atoi(c.App.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("SERVICE_PORT must be between 1 and 65535, got %q", c.App.Port))
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if _, err := c.DBDSN(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DB.Driver))
	}
	if c.DB.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MigrateURL is the database URL understood by golang-migrate for the
// configured driver.
func (c Config) MigrateURL() (string, error) {
	switch c.DB.Driver {
	case DriverSQLite:
		return "sqlite3://" + c.DB.SQLitePath, nil
	case DriverPostgres:
		dsn, err := c.DBDSN()
		if err != nil {
			return "", err
		}
		return "pgx5" + strings.TrimPrefix(dsn, "postgres"), nil
	default:
		return "", fmt.Errorf("unsupported DB driver %q", c.DB.Driver)
	}
}

// MQEnabled is false when no broker host is configured.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
