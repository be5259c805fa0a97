package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"workday"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string        `envconfig:"WORKDAY_ADDRESS" default:":8080"`
	MetricsAddress  string        `envconfig:"WORKDAY_METRICS_ADDRESS" default:":8081"`
	LogLevel        string        `envconfig:"WORKDAY_LOG_LEVEL" default:"info"`
	MigrationFolder string        `envconfig:"WORKDAY_MIGRATIONS_FOLDER" default:""`
	Timezone        string        `envconfig:"WORKDAY_TIMEZONE" default:"UTC"`
	StoreTimeout    time.Duration `envconfig:"WORKDAY_STORE_TIMEOUT" default:"5s"`
	EventsTopic     string        `envconfig:"WORKDAY_EVENTS_TOPIC" default:"workday"`
	Auth            Auth
	Sweep           Sweep
}

type Auth struct {
	AuthenticationType string `envconfig:"WORKDAY_AUTH" default:"none"`
	JwkCertURL         string `envconfig:"WORKDAY_JWK_URL" default:""`
}

type Sweep struct {
	ExpiryInterval       time.Duration `envconfig:"WORKDAY_EXPIRY_SWEEP_INTERVAL" default:"1m"`
	AvailabilityInterval time.Duration `envconfig:"WORKDAY_AVAILABILITY_SWEEP_INTERVAL" default:"5m"`
}

// New reads the process configuration from the environment once.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg := NewDefault()
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns the configuration with every default applied and no
// environment lookups.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type:     "pgsql",
			Hostname: "localhost",
			Port:     "5432",
			Name:     "workday",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			Address:        ":8080",
			MetricsAddress: ":8081",
			LogLevel:       "info",
			Timezone:       "UTC",
			StoreTimeout:   5 * time.Second,
			EventsTopic:    "workday",
			Auth: Auth{
				AuthenticationType: "none",
			},
			Sweep: Sweep{
				ExpiryInterval:       time.Minute,
				AvailabilityInterval: 5 * time.Minute,
			},
		},
	}
}
