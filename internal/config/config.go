package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Agent     AgentConfig
	ReliefWeb ReliefWebConfig
	Dashboard DashboardConfig
	Summaries SummariesConfig
	SMTP      SMTPConfig
	DB        DatabaseConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AgentConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type ReliefWebConfig struct {
	URL     string
	AppName string
	Limit   int
}

type DashboardConfig struct {
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	WorkerCount     int
	WorkerBuffer    int
}

type SummariesConfig struct {
	TTL      time.Duration
	Capacity int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Agent: AgentConfig{
			BaseURL:    getEnv("AGENT_BASE_URL", "https://api.groq.com/openai/v1"),
			APIKey:     getEnv("AGENT_API_KEY", ""),
			Model:      getEnv("AGENT_MODEL", "llama-3.1-8b-instant"),
			Timeout:    getEnvDuration("AGENT_TIMEOUT", 90*time.Second),
			MaxRetries: getEnvInt("AGENT_MAX_RETRIES", 3),
			RetryDelay: getEnvDuration("AGENT_RETRY_DELAY", 2*time.Second),
		},
		ReliefWeb: ReliefWebConfig{
			URL:     getEnv("RELIEFWEB_URL", "https://api.reliefweb.int/v1/disasters"),
			AppName: getEnv("RELIEFWEB_APPNAME", "disaster-response-dashboard"),
			Limit:   getEnvInt("RELIEFWEB_LIMIT", 100),
		},
		Dashboard: DashboardConfig{
			CacheTTL:        getEnvDuration("DASHBOARD_CACHE_TTL", time.Hour),
			RefreshInterval: getEnvDuration("DASHBOARD_REFRESH_INTERVAL", time.Hour),
			WorkerCount:     getEnvInt("WORKER_COUNT", 2),
			WorkerBuffer:    getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Summaries: SummariesConfig{
			TTL:      getEnvDuration("SUMMARY_TTL", 168*time.Hour),
			Capacity: getEnvInt("SUMMARY_CAPACITY", 500),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "alerts@disaster-response.local"),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/disaster-response.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Agent.MaxRetries < 0 {
		return fmt.Errorf("agent max retries must not be negative")
	}
	if c.ReliefWeb.Limit < 1 || c.ReliefWeb.Limit > 1000 {
		return fmt.Errorf("invalid ReliefWeb limit: %d", c.ReliefWeb.Limit)
	}
	if c.Dashboard.RefreshInterval < time.Minute {
		return fmt.Errorf("dashboard refresh interval must be at least 1 minute")
	}
	if c.Summaries.Capacity < 1 {
		return fmt.Errorf("summary capacity must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
