package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSize = 10000
	DefaultReps    = 5
	DefaultWarmup  = 2
	DefaultDt      = 0.1
)

// Config describes a benchmark sweep as loaded from a yaml file. Values are
// layered: defaults, then file, then CLI flags.
type Config struct {
	Methods   []string `yaml:"methods"`
	Sizes     []int    `yaml:"sizes"`
	MaxSize   int      `yaml:"max_size"`
	Reps      int      `yaml:"reps"`
	Warmup    int      `yaml:"warmup"`
	Dt        float64  `yaml:"dt"`
	Processes []string `yaml:"processes"`
}

func DefaultConfig() *Config {
	return &Config{
		Methods:   []string{"one", "span", "variant-one", "variant-span"},
		MaxSize:   DefaultMaxSize,
		Reps:      DefaultReps,
		Warmup:    DefaultWarmup,
		Dt:        DefaultDt,
		Processes: []string{"energy_loss"},
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

// Validate checks ranges the harness depends on. Method and process names
// are resolved later, by the packages that own them.
func (c *Config) Validate() error {
	if len(c.Methods) == 0 {
		return fmt.Errorf("config: no methods")
	}
	if len(c.Sizes) == 0 && c.MaxSize < 1 {
		return fmt.Errorf("config: max_size must be >= 1")
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return fmt.Errorf("config: invalid size %d", n)
		}
	}
	if c.Reps < 1 {
		return fmt.Errorf("config: reps must be >= 1")
	}
	if c.Warmup < 0 {
		return fmt.Errorf("config: warmup must be >= 0")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive")
	}
	if len(c.Processes) == 0 {
		return fmt.Errorf("config: no processes")
	}
	return nil
}

// GetSizes returns the explicit size list if given, otherwise powers of two
// up to MaxSize.
func (c *Config) GetSizes() []int {
	if len(c.Sizes) > 0 {
		return c.Sizes
	}
	var sizes []int
	for n := 1; n <= c.MaxSize; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}
