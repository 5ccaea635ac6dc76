package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shopkeeper/internal/flagx"
	"github.com/dmitrijs2005/shopkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let an
// explicit false or zero override a default while absent keys leave it alone.
type JsonConfig struct {
	DatabaseDSN    string          `json:"database_dsn"`
	DBHost         string          `json:"db_host"`
	DBPort         int             `json:"db_port"`
	DBUser         string          `json:"db_user"`
	DBPassword     string          `json:"db_password"`
	DBName         string          `json:"db_name"`
	DBCharset      string          `json:"db_charset"`
	DBSSLMode      string          `json:"db_sslmode"`
	ConnectTimeout *timex.Duration `json:"connect_timeout"`
	RunMigrations  *bool           `json:"run_migrations"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// A missing flag means there is nothing to load.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DBHost, c.DBHost)
	if c.DBPort != 0 {
		config.DBPort = c.DBPort
	}
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.DBCharset, c.DBCharset)
	setString(&config.DBSSLMode, c.DBSSLMode)
	if c.ConnectTimeout != nil {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.RunMigrations != nil {
		config.RunMigrations = *c.RunMigrations
	}
	setString(&config.LogLevel, c.LogLevel)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
