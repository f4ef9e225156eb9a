package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAtoms       = 32
	DefaultConfigs     = 100
	DefaultCell        = 12.0
	DefaultTemperature = 40.0
	DefaultSigma       = 0.25
	DefaultKernel      = "auto"
	DefaultDataDir     = ".enslab"
)

type Config struct {
	Atoms       int     `yaml:"atoms"`
	Configs     int     `yaml:"configs"`
	Cell        float64 `yaml:"cell"`
	Temperature float64 `yaml:"temperature"`
	Sigma       float64 `yaml:"sigma"`
	Kernel      string  `yaml:"kernel"`
	Seed        int64   `yaml:"seed"`
	DataDir     string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Atoms:       DefaultAtoms,
		Configs:     DefaultConfigs,
		Cell:        DefaultCell,
		Temperature: DefaultTemperature,
		Sigma:       DefaultSigma,
		Kernel:      DefaultKernel,
		DataDir:     DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Atoms <= 0 {
		return fmt.Errorf("atoms must be positive, got %d", c.Atoms)
	}
	if c.Configs <= 0 {
		return fmt.Errorf("configs must be positive, got %d", c.Configs)
	}
	if c.Cell <= 0 {
		return fmt.Errorf("cell must be positive, got %f", c.Cell)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be non-negative, got %f", c.Temperature)
	}
	if c.Sigma <= 0 {
		return fmt.Errorf("sigma must be positive, got %f", c.Sigma)
	}
	return nil
}
