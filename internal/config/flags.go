package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/flagx"
)

var ownFlags = []string{"-d", "-h", "-P", "-u", "-p", "-n", "-e", "-s", "-t", "-m", "-l"}

// parseFlags applies command-line overrides. The connect timeout is given
// in whole seconds.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("shopkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DBHost, "h", config.DBHost, "database host")
	fs.IntVar(&config.DBPort, "P", config.DBPort, "database port")
	fs.StringVar(&config.DBUser, "u", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "p", config.DBPassword, "database password")
	fs.StringVar(&config.DBName, "n", config.DBName, "database name")
	fs.StringVar(&config.DBCharset, "e", config.DBCharset, "client character set")
	fs.StringVar(&config.DBSSLMode, "s", config.DBSSLMode, "sslmode")
	timeout := fs.Int("t", int(config.ConnectTimeout/time.Second), "connect timeout (in seconds)")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run migrations on startup")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	config.ConnectTimeout = time.Duration(*timeout) * time.Second
	return nil
}
