package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:        "development",
			Port:       "8390",
			JWTSecret:  "secure-secret-at-least-32-chars-long",
			DBPassword: "secure-password",
			DBSSLMode:  "disable",
			RedisURL:   "localhost:6379",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Short secret allowed outside production", func(c *Config) { c.JWTSecret = "short" }, false},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with default DB password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"Production fully hardened", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
