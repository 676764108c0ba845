package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StateConfig selects where the terminal keeps its session record.
// Backend is one of "file", "redis" or "memory".
type StateConfig struct {
	Backend    string      `yaml:"backend"`
	Path       string      `yaml:"path"`
	Passphrase string      `yaml:"passphrase"`
	TerminalID string      `yaml:"terminal_id"`
	Redis      RedisConfig `yaml:"redis"`
}

type SessionConfig struct {
	TTLHours             int `yaml:"ttl_hours"`
	CheckIntervalSeconds int `yaml:"check_interval_seconds"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	State   StateConfig   `yaml:"state"`
	Session SessionConfig `yaml:"session"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	// 环境变量覆盖（生产环境使用）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if url := os.Getenv("BACKEND_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	if backend := os.Getenv("STATE_BACKEND"); backend != "" {
		cfg.State.Backend = backend
	}
	if path := os.Getenv("STATE_PATH"); path != "" {
		cfg.State.Path = path
	}
	if passphrase := os.Getenv("STATE_PASSPHRASE"); passphrase != "" {
		cfg.State.Passphrase = passphrase
	}
	if terminal := os.Getenv("TERMINAL_ID"); terminal != "" {
		cfg.State.TerminalID = terminal
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.State.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.State.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			cfg.State.Redis.DB = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8090"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 10
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = "memory"
	}
	if cfg.State.TerminalID == "" {
		cfg.State.TerminalID = "default"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 12
	}
	if cfg.Session.CheckIntervalSeconds == 0 {
		cfg.Session.CheckIntervalSeconds = 60
	}
}
