// Package config loads runtime configuration for the shopkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   full PostgreSQL DSN (overrides the individual settings below)
//	-h string   database host
//	-P int      database port
//	-u string   database user
//	-p string   database password
//	-n string   database name
//	-e string   client character set
//	-s string   sslmode
//	-t int      connect timeout, seconds
//	-m          run schema migrations on startup
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "db_host": "127.0.0.1",
//	  "db_port": 5432,
//	  "db_user": "shop",
//	  "db_password": "secret",
//	  "db_name": "shop",
//	  "db_charset": "UTF8",
//	  "db_sslmode": "disable",
//	  "connect_timeout": "5s",
//	  "run_migrations": true,
//	  "log_level": "info"
//	}
//
// Environment variables are not consulted.
package config
