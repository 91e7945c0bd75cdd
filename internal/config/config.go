package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings for the Telegram transport.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// VKConfig holds VK community transport settings.
type VKConfig struct {
	Token string `yaml:"token" envconfig:"VK_TOKEN"`
	// GroupID may be left 0 to resolve the community id from the token.
	GroupID int `yaml:"group_id" envconfig:"VK_GROUP_ID"`
}

// RedisConfig describes the Redis session backend.
type RedisConfig struct {
	Host     string `yaml:"host" envconfig:"REDIS_HOST"`
	Port     string `yaml:"port" envconfig:"REDIS_PORT"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// PostgresConfig describes the Postgres session backend.
type PostgresConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	Backend  string         `yaml:"backend" envconfig:"STORE_BACKEND"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// QuizConfig points at the question corpus.
type QuizConfig struct {
	// CorpusPath is a questions file or a directory of question files.
	CorpusPath string `yaml:"corpus_path" envconfig:"QUIZ_CORPUS_PATH"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
	File   string `yaml:"file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Store backend names accepted in store.backend.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config aggregates all bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	VK       VKConfig       `yaml:"vk"`
	Store    StoreConfig    `yaml:"store"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates transport-agnostic fields and adjusts defaults.
// Transport tokens are checked separately so each binary only requires its own.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Quiz.CorpusPath) == "" {
		return fmt.Errorf("quiz.corpus_path is required")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if backend == "" {
		backend = BackendRedis
	}
	switch backend {
	case BackendRedis:
		if strings.TrimSpace(cfg.Store.Redis.Host) == "" {
			cfg.Store.Redis.Host = "localhost"
		}
		if strings.TrimSpace(cfg.Store.Redis.Port) == "" {
			cfg.Store.Redis.Port = "6379"
		}
	case BackendPostgres:
		pg := cfg.Store.Postgres
		if pg.Host == "" || pg.User == "" || pg.Name == "" {
			return fmt.Errorf("store.postgres host, user and name are required when store.backend is 'postgres'")
		}
		if cfg.Store.Postgres.SSLMode == "" {
			cfg.Store.Postgres.SSLMode = "disable"
		}
		if cfg.Store.Postgres.MaxConnections <= 0 {
			cfg.Store.Postgres.MaxConnections = 4
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid store.backend %q; allowed: redis, postgres, memory", cfg.Store.Backend)
	}
	cfg.Store.Backend = backend

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	return nil
}

// ValidateTelegram checks the fields the Telegram binary cannot run without.
func (c *Config) ValidateTelegram() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required")
	}
	return nil
}

// ValidateVK checks the fields the VK binary cannot run without.
func (c *Config) ValidateVK() error {
	if strings.TrimSpace(c.VK.Token) == "" {
		return fmt.Errorf("vk token is required")
	}
	return nil
}
