package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Ollama        OllamaConfig  `yaml:"ollama"`
	Engine        EngineConfig  `yaml:"engine"`
}

type EngineConfig struct {
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type OllamaConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 24 * time.Hour

	cfg := &Config{
		Addr:          getEnv("PITCH_ADDR", ":8080"),
		JWTSecret:     getEnv("PITCH_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("PITCH_DATABASE_PATH", "pitch.db"),
		TokenDuration: tokenDuration,
		Ollama: OllamaConfig{
			BaseURL:                 getEnv("PITCH_OLLAMA_URL", "http://localhost:11434"),
			Timeout:                 30 * time.Second,
			Retries:                 0,
			Backoff:                 500 * time.Millisecond,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
		Engine: EngineConfig{
			Model:   getEnv("PITCH_MODEL", "llama3"),
			Timeout: 60 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the config for values that are unsafe or unusable outside
// local development and fills in zero Ollama settings with their defaults.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must be set")
	}
	if c.Engine.Model == "" {
		return fmt.Errorf("engine.model must be set")
	}
	if c.JWTSecret == "" || c.JWTSecret == "supersecretkey" {
		if os.Getenv("PITCH_ENV") != "development" {
			return fmt.Errorf("jwt_secret must be set to a strong value outside development")
		}
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Timeout <= 0 {
		c.Ollama.Timeout = 30 * time.Second
	}
	if c.Ollama.CircuitFailureThreshold <= 0 {
		c.Ollama.CircuitFailureThreshold = 5
	}
	if c.Ollama.CircuitReset <= 0 {
		c.Ollama.CircuitReset = 30 * time.Second
	}
	if c.Engine.Timeout <= 0 {
		c.Engine.Timeout = 60 * time.Second
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
