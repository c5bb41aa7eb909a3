package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config for tool paths and defaults.
type fileConfig struct {
	FFmpegBin    string `yaml:"ffmpeg_bin"`
	FFprobeBin   string `yaml:"ffprobe_bin"`
	WorkDir      string `yaml:"work_dir"`
	DefaultLevel int    `yaml:"default_level"`
	UserAgent    string `yaml:"user_agent"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
