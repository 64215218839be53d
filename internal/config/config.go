// Package config loads the runtime configuration from a YAML file with
// SCHEDULE_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ScheduleURLs        []string `yaml:"schedule_urls"`
	DownloadsDir        string   `yaml:"downloads_dir"`
	OutputDir           string   `yaml:"output_dir"`
	OutputName          string   `yaml:"output_name"`
	PollIntervalSeconds int      `yaml:"poll_interval_seconds"`
	LogMode             string   `yaml:"log_mode"`
	SkipBadRows         bool     `yaml:"skip_bad_rows"`
	Firebase            Firebase `yaml:"firebase"`
}

type Firebase struct {
	CredentialsFile string `yaml:"credentials_file"`
	DatabaseURL     string `yaml:"database_url"`
}

// Enabled reports whether the Firebase sink is configured.
func (f Firebase) Enabled() bool {
	return f.DatabaseURL != ""
}

func Default() Config {
	return Config{
		ScheduleURLs: []string{
			"https://my.ukma.edu.ua/files/schedule/2023/1/1472/3.xlsx",
		},
		DownloadsDir: "data/downloaded_schedules",
		OutputDir:    "data/parsed_schedules",
		OutputName:   "schedule",
		LogMode:      "dev",
	}
}

// Load reads path over the defaults when the file exists and then applies
// environment overrides. A missing file is not an error; a malformed one
// is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SCHEDULE_URLS")); v != "" {
		urls := strings.Split(v, ",")
		cfg.ScheduleURLs = cfg.ScheduleURLs[:0]
		for _, u := range urls {
			if u = strings.TrimSpace(u); u != "" {
				cfg.ScheduleURLs = append(cfg.ScheduleURLs, u)
			}
		}
	}
	if v := os.Getenv("SCHEDULE_DOWNLOADS_DIR"); v != "" {
		cfg.DownloadsDir = v
	}
	if v := os.Getenv("SCHEDULE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("SCHEDULE_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("SCHEDULE_POLL_INTERVAL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			cfg.PollIntervalSeconds = seconds
		}
	}
}
