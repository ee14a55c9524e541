/*
NAME
  config_test.go

DESCRIPTION
  config_test.go tests the HTTP server's flag-bound configuration
  defaults and overrides.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package config

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	c, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if c.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", c.ListenAddr)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.LogLevel)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	c, err := ParseFlags([]string{"--listen", ":9090", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if c.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", c.ListenAddr)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}
}
