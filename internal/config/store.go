package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abdulachik/yearsago/internal/prompt"
)

// TokenSource obtains an OAuth1 access token pair for consumer credentials.
type TokenSource interface {
	Obtain(ctx context.Context, consumerKey, consumerSecret string) (token, secret string, err error)
}

// Store loads the config file and fills in missing values interactively.
type Store struct {
	path     string
	prompter *prompt.Prompter
	tokens   TokenSource
}

// StoreConfig holds dependencies for the config store.
type StoreConfig struct {
	Path     string
	Prompter *prompt.Prompter
	Tokens   TokenSource
}

// NewStore creates a new config store.
func NewStore(cfg StoreConfig) *Store {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}

	return &Store{
		path:     path,
		prompter: cfg.Prompter,
		tokens:   cfg.Tokens,
	}
}

// Path returns the location of the config file.
func (s *Store) Path() string {
	return s.path
}

// fileConfig mirrors Config but keeps years_ago raw so that a non-integer
// value is detected instead of failing the whole file.
type fileConfig struct {
	ConsumerKey      string          `json:"consumer_key"`
	ConsumerSecret   string          `json:"consumer_secret"`
	OAuthToken       string          `json:"oauth_token"`
	OAuthTokenSecret string          `json:"oauth_token_secret"`
	YearsAgo         json.RawMessage `json:"years_ago"`
	Blog             string          `json:"blog"`
}

// Load reads the config file, prompts for anything missing or invalid,
// writes the result back and returns the re-read file contents.
func (s *Store) Load(ctx context.Context) (*Config, error) {
	cfg, err := s.Read()
	if err != nil {
		slog.Debug("config unreadable, starting fresh", "path", s.path, "error", err)
		s.prompter.Println("Invalid or missing config file, creating one.")
		cfg = &Config{}
	}

	if err := s.resolve(ctx, cfg); err != nil {
		return nil, err
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}

	// Load it again so callers see exactly what was persisted
	saved, err := s.Read()
	if err != nil {
		return nil, fmt.Errorf("reload config: %w", err)
	}

	return saved, nil
}

// Reauthorize replaces the stored access token with a freshly authorized one.
func (s *Store) Reauthorize(ctx context.Context) (*Config, error) {
	cfg, err := s.Read()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.OAuthToken = ""
	cfg.OAuthTokenSecret = ""

	if err := s.resolve(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Store) resolve(ctx context.Context, cfg *Config) error {
	if strings.TrimSpace(cfg.Blog) == "" {
		blog, err := s.prompter.AskUntil("Blog name to post to: ", func(answer string) bool {
			return strings.TrimSpace(answer) != ""
		})
		if err != nil {
			return fmt.Errorf("read blog name: %w", err)
		}
		cfg.Blog = strings.TrimSpace(blog)
	}

	if cfg.YearsAgo < 1 {
		years, err := s.askYears()
		if err != nil {
			return fmt.Errorf("read years: %w", err)
		}
		cfg.YearsAgo = years
	}

	if !cfg.HasConsumer() {
		key, err := s.prompter.Ask("Input Tumblr application consumer key: ")
		if err != nil {
			return fmt.Errorf("read consumer key: %w", err)
		}
		secret, err := s.prompter.Ask("Input Tumblr application secret key: ")
		if err != nil {
			return fmt.Errorf("read consumer secret: %w", err)
		}
		cfg.ConsumerKey = strings.TrimSpace(key)
		cfg.ConsumerSecret = strings.TrimSpace(secret)
	}

	if !cfg.HasToken() {
		if s.tokens == nil {
			return fmt.Errorf("oauth token missing and no authorizer configured")
		}
		token, secret, err := s.tokens.Obtain(ctx, cfg.ConsumerKey, cfg.ConsumerSecret)
		if err != nil {
			return fmt.Errorf("authorize: %w", err)
		}
		cfg.OAuthToken = token
		cfg.OAuthTokenSecret = secret
	}

	return nil
}

func (s *Store) askYears() (int, error) {
	for {
		answer, err := s.prompter.Ask("How many years to queue posts ahead: ")
		if err != nil {
			return 0, err
		}
		if years, ok := parseYears(answer); ok {
			return years, nil
		}
		s.prompter.Println("Must be an integer above 0")
	}
}

// parseYears accepts a plain digit string with a value of at least 1.
func parseYears(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Read parses the config file without prompting.
// A years_ago value that is not a JSON integer is read as 0.
func (s *Store) Read() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	years, err := strconv.Atoi(string(bytes.TrimSpace(raw.YearsAgo)))
	if err != nil {
		years = 0
	}

	return &Config{
		ConsumerKey:      raw.ConsumerKey,
		ConsumerSecret:   raw.ConsumerSecret,
		OAuthToken:       raw.OAuthToken,
		OAuthTokenSecret: raw.OAuthTokenSecret,
		YearsAgo:         years,
		Blog:             raw.Blog,
	}, nil
}

// Save writes cfg to the config file, replacing its contents.
func (s *Store) Save(cfg *Config) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	slog.Debug("config written", "path", s.path)
	return nil
}
