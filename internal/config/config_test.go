package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "test-token"
quiz:
  corpus_path: "questions"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("store.backend = %q, want %q", cfg.Store.Backend, BackendRedis)
	}
	if cfg.Store.Redis.Host != "localhost" || cfg.Store.Redis.Port != "6379" {
		t.Errorf("redis defaults = %s:%s, want localhost:6379", cfg.Store.Redis.Host, cfg.Store.Redis.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNormalizeRequiresCorpusPath(t *testing.T) {
	cfg := &Config{}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty quiz.corpus_path")
	}
}

func TestNormalizeRejectsUnknownBackend(t *testing.T) {
	cfg := &Config{
		Quiz:  QuizConfig{CorpusPath: "questions"},
		Store: StoreConfig{Backend: "etcd"},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown store.backend")
	}
}

func TestNormalizePostgresRequiredFields(t *testing.T) {
	cfg := &Config{
		Quiz:  QuizConfig{CorpusPath: "questions"},
		Store: StoreConfig{Backend: BackendPostgres},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for incomplete postgres config")
	}

	cfg.Store.Postgres = PostgresConfig{Host: "db", User: "quiz", Name: "quiz"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Store.Postgres.SSLMode != "disable" {
		t.Errorf("sslmode = %q, want disable", cfg.Store.Postgres.SSLMode)
	}
	if cfg.Store.Postgres.MaxConnections != 4 {
		t.Errorf("max_connections = %d, want 4", cfg.Store.Postgres.MaxConnections)
	}
}

func TestNormalizeWebhookMode(t *testing.T) {
	cfg := &Config{
		Quiz:     QuizConfig{CorpusPath: "questions"},
		Telegram: TelegramConfig{RunMode: RunModeWebhook},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}

	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := &Config{
		Quiz:     QuizConfig{CorpusPath: "questions"},
		Telegram: TelegramConfig{RunMode: "polling"},
	}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := &Config{
		Quiz:     QuizConfig{CorpusPath: "questions"},
		Telegram: TelegramConfig{RunMode: "carrier-pigeon"},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run_mode")
	}
}

func TestPerTransportTokenValidation(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t"}}
	if err := cfg.ValidateTelegram(); err != nil {
		t.Errorf("ValidateTelegram: %v", err)
	}
	if err := cfg.ValidateVK(); err == nil {
		t.Error("expected error for missing vk token")
	}

	cfg = &Config{VK: VKConfig{Token: "v"}}
	if err := cfg.ValidateVK(); err != nil {
		t.Errorf("ValidateVK: %v", err)
	}
	if err := cfg.ValidateTelegram(); err == nil {
		t.Error("expected error for missing telegram token")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "file-token"
quiz:
  corpus_path: "questions"
`)
	t.Setenv("BOT_TOKEN", "env-token")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.Telegram.Token)
	}
}
