/*
NAME
  config.go

DESCRIPTION
  config.go holds the HTTP server's own configuration, the plain-struct
  pattern the teacher's revid/config.Config uses, bound from CLI flags
  via pflag in cmd/aprsd rather than reading environment variables
  directly, so the same struct can be constructed in tests without
  touching the process environment.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

// Package config holds configuration for the aprsd HTTP server.
package config

import "github.com/spf13/pflag"

// MaxUploadBytes caps the size of a decoded WAV upload accepted by the
// /decode endpoint.
const MaxUploadBytes = 5_000_000

// Config is the aprsd server's runtime configuration.
type Config struct {
	ListenAddr  string
	CORSOrigins []string
	LogLevel    string
	StaticDir   string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		StaticDir:   "./static",
	}
}

// BindFlags registers c's fields on fs, overwriting c's current values
// with fs's defaults. Call fs.Parse and then re-read c's fields, or use
// ParseFlags for the common case of parsing os.Args.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ListenAddr, "listen", "l", c.ListenAddr, "address to listen on")
	fs.StringSliceVar(&c.CORSOrigins, "cors-origin", c.CORSOrigins, "allowed CORS origin(s)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.StaticDir, "static-dir", c.StaticDir, "directory to serve static files from")
}

// ParseFlags parses args against a Default configuration and returns
// the result.
func ParseFlags(args []string) (Config, error) {
	c := Default()
	fs := pflag.NewFlagSet("aprsd", pflag.ContinueOnError)
	c.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return c, nil
}
