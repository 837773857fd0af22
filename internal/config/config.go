package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the config file kept beside the executable.
const FileName = "config.json"

// Config holds the credentials and settings persisted between runs.
type Config struct {
	// Tumblr application credentials
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`

	// OAuth1 access token for the account
	OAuthToken       string `json:"oauth_token"`
	OAuthTokenSecret string `json:"oauth_token_secret"`

	// How far ahead of the original date reblogs are queued
	YearsAgo int `json:"years_ago"`

	// Destination blog name
	Blog string `json:"blog"`
}

// Validate checks that every field is present before any network call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Blog) == "" {
		return fmt.Errorf("blog is required")
	}
	if c.YearsAgo < 1 {
		return fmt.Errorf("years_ago must be at least 1, got %d", c.YearsAgo)
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return fmt.Errorf("consumer_key and consumer_secret are required")
	}
	if c.OAuthToken == "" || c.OAuthTokenSecret == "" {
		return fmt.Errorf("oauth_token and oauth_token_secret are required")
	}
	return nil
}

// HasConsumer reports whether both application credentials are set.
func (c *Config) HasConsumer() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// HasToken reports whether both access token fields are set.
func (c *Config) HasToken() bool {
	return c.OAuthToken != "" && c.OAuthTokenSecret != ""
}

// Redacted returns a copy with secrets masked for display.
func (c Config) Redacted() Config {
	c.ConsumerSecret = mask(c.ConsumerSecret)
	c.OAuthToken = mask(c.OAuthToken)
	c.OAuthTokenSecret = mask(c.OAuthTokenSecret)
	return c
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

// DefaultPath returns the config path next to the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}
