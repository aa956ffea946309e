// Package config loads the EduCareer configuration from defaults, an
// optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/llm"
)

// Session registry backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Server          ServerConfig     `yaml:"server"`
	LLM             llm.Config       `yaml:"llm"`
	Store           StoreConfig      `yaml:"store"`
	Sessions        SessionsConfig   `yaml:"sessions"`
	Log             LogConfig        `yaml:"log"`
	DefaultLanguage catalog.Language `yaml:"default_language"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// StoreConfig configures the event store. An empty DSN uses the default
// database file.
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// SessionsConfig configures the session registry.
type SessionsConfig struct {
	Backend       string        `yaml:"backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	TTL           time.Duration `yaml:"ttl"`
}

// LogConfig configures the logger. File, when set, receives all output.
type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		LLM: llm.DefaultConfig(),
		Sessions: SessionsConfig{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Log:             LogConfig{Mode: "dev"},
		DefaultLanguage: catalog.DefaultLanguage,
	}
}

// Load builds the configuration. path is an optional YAML file; envFile is
// an optional dotenv file whose absence is not an error. Values already
// set in the process environment win over the dotenv file.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LLM.ApplyEnv()

	setIf(&c.Server.Addr, "EDUCAREER_ADDR")
	setIf(&c.Store.DSN, "EDUCAREER_DB")
	setIf(&c.Sessions.Backend, "EDUCAREER_SESSIONS")
	setIf(&c.Sessions.RedisAddr, "EDUCAREER_REDIS_ADDR")
	setIf(&c.Sessions.RedisPassword, "EDUCAREER_REDIS_PASSWORD")
	setIf(&c.Log.Mode, "EDUCAREER_LOG_MODE")
	setIf(&c.Log.File, "EDUCAREER_LOG_FILE")

	if v := os.Getenv("EDUCAREER_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Sessions.TTL = d
		}
	}
	if v := os.Getenv("EDUCAREER_LANG"); v != "" {
		c.DefaultLanguage = catalog.Language(v)
	}
	if v := os.Getenv("EDUCAREER_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

func setIf(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks the enumerated and required fields. LLM credentials are
// checked only when content is requested, so offline use stays possible.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Sessions.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Sessions.RedisAddr == "" {
			return fmt.Errorf("sessions.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("sessions.backend must be %q or %q, got %q", BackendMemory, BackendRedis, c.Sessions.Backend)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions.ttl must be positive")
	}
	if _, err := catalog.ParseLanguage(string(c.DefaultLanguage)); err != nil {
		return fmt.Errorf("default_language: %w", err)
	}
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOpenRouter, llm.ProviderMock:
	default:
		return fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider)
	}
	return nil
}
