package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidPort = errors.New("PORT must be a positive integer")

// Config holds the runtime configuration of the service. All values are taken from the
// process environment.
type Config struct {
	Port       int    `envconfig:"PORT" default:"8080"`
	DBHost     string `envconfig:"DBHOST" default:"localhost:3306"`
	DBUser     string `envconfig:"DBUSER" default:"root"`
	DBPassword string `envconfig:"DBPWD"`
	DBName     string `envconfig:"DBNAME" default:"lunchly"`
	GinLogging string `envconfig:"GIN_LOGGING" default:"on"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return ErrInvalidPort
	}
	return nil
}

// DSN is the data source name for the MySQL driver. Times are parsed into time.Time values in
// local time, and UPDATE statements report matched rather than changed rows.
func (c *Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = c.DBHost
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.ClientFoundRows = true
	return dsn.FormatDSN()
}

// RequestLogging reports whether HTTP requests are logged.
func (c *Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}
