package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the settings needed to reach the store and run the CLI.
type Config struct {
	DatabaseDSN    string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBCharset      string
	DBSSLMode      string
	ConnectTimeout time.Duration
	RunMigrations  bool
	LogLevel       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBUser = "postgres"
	c.DBPassword = "postgres"
	c.DBName = "shopkeeper"
	c.DBCharset = "UTF8"
	c.DBSSLMode = "disable"
	c.ConnectTimeout = 5 * time.Second
	c.RunMigrations = false
	c.LogLevel = "info"
}

// DSN returns DatabaseDSN when set, otherwise a postgres URL assembled from
// the individual settings. The character set travels as client_encoding.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	q := url.Values{}
	if c.DBSSLMode != "" {
		q.Set("sslmode", c.DBSSLMode)
	}
	if c.DBCharset != "" {
		q.Set("client_encoding", c.DBCharset)
	}
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	return u.String()
}

// LoadConfig builds a Config from defaults, the optional JSON file and the
// process flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
