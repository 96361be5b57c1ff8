package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Category catalog sources.
const (
	SourceStatic   = "static"
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
)

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	OpenTDB struct {
		BaseURL string `yaml:"base_url"`
		Amount  int    `yaml:"amount"`
	} `yaml:"opentdb"`
	Quiz struct {
		RevealDelay   string `yaml:"reveal_delay"`
		AnswerTimeout string `yaml:"answer_timeout"`
	} `yaml:"quiz"`
	Categories struct {
		Source string `yaml:"source"`
		TTL    string `yaml:"ttl"`
	} `yaml:"categories"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Env = "development"
	cfg.Server.Port = "8080"
	cfg.OpenTDB.BaseURL = "https://opentdb.com"
	cfg.OpenTDB.Amount = 5
	cfg.Quiz.RevealDelay = "1.5s"
	cfg.Categories.Source = SourceStatic
	cfg.Categories.TTL = "1h"
	cfg.Log.File = "trivia.log"
	return cfg
}

// Load reads YAML config from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.OpenTDB.Amount <= 0 {
		cfg.OpenTDB.Amount = 5
	}
	switch cfg.Categories.Source {
	case SourceStatic, SourceRemote, SourcePostgres:
	case "":
		cfg.Categories.Source = SourceStatic
	default:
		return cfg, errors.New("categories.source must be static, remote or postgres")
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
