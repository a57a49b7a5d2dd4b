// Package config reads the service configuration from the process environment.
//
// Usage example on the command line:
//
//	> PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 LOG_LEVEL=debug GIN_LOGGING=off go run main.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds everything the service binaries need to know about their environment.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string
	Port       int
	GinLogging bool
	LogLevel   logrus.Level
}

// Load reads the configuration from the environment variables DBUSER, DBPWD, DBHOST, DBNAME,
// PORT, GIN_LOGGING and LOG_LEVEL. Only PORT and LOG_LEVEL are validated; the database settings
// are passed on to the driver as they are.
func Load() (Config, error) {
	cfg := Config{
		DBUser:     os.Getenv("DBUSER"),
		DBPassword: os.Getenv("DBPWD"),
		DBHost:     os.Getenv("DBHOST"),
		DBName:     getenv("DBNAME", "test"),
		GinLogging: !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off"),
	}

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, errors.Errorf("could not parse PORT env variable %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	cfg.LogLevel, err = logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, errors.Wrap(err, "could not parse LOG_LEVEL env variable")
	}
	return cfg, nil
}

// DSN returns the data source name for the MySQL driver. Updates report matched rather than
// changed rows, so that writing unchanged values still counts as a hit.
func (c Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = c.DBHost
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	dsn.Timeout = 10 * time.Second
	return dsn.FormatDSN()
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
