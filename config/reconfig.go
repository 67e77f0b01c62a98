package config

import (
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/knokko/sagrepair/reconfig"
)

// ReconfigConfig is the plain, YAML-serializable mirror of
// reconfig.Options: every field there that can be expressed as data
// (not a callback or an rng) has a YAML tag here, using the snake_case
// naming of the C++ Reconfiguration::Options original.
type ReconfigConfig struct {
	NumThreads      int   `yaml:"num_threads"`
	TimeoutSeconds  int   `yaml:"timeout_seconds"`
	MaxCutsPerIter  int   `yaml:"max_cuts_per_iter"`
	SkipChance      int   `yaml:"skip_chance"`
	DryRating       bool  `yaml:"dry_rating"`
	EnforceSafePath bool  `yaml:"enforce_safe_path"`
	RandomSeed      int64 `yaml:"random_seed"`
}

// LoadReconfigConfig reads and parses a ReconfigConfig from the YAML
// document at path.
func LoadReconfigConfig(path string) (*ReconfigConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseReconfigConfig(data)
}

// ParseReconfigConfig parses a ReconfigConfig from an in-memory YAML
// document, applying reconfig.DefaultOptions' values for any field the
// document omits.
func ParseReconfigConfig(data []byte) (*ReconfigConfig, error) {
	defaults := reconfig.DefaultOptions()
	cfg := &ReconfigConfig{
		NumThreads:     defaults.NumWorkers,
		MaxCutsPerIter: defaults.MaxCutsPerIter,
		SkipChance:     defaults.SkipChance,
		RandomSeed:     1,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.SkipChance < 0 || cfg.SkipChance >= 100 {
		return nil, ErrInvalidSkipChance
	}
	return cfg, nil
}

// ToOptions builds a reconfig.Options from this config, constructing a
// fresh deterministic rng from RandomSeed. progress may be nil.
func (c ReconfigConfig) ToOptions(progress func(string)) reconfig.Options {
	return reconfig.Options{
		NumWorkers:      c.NumThreads,
		Timeout:         time.Duration(c.TimeoutSeconds) * time.Second,
		MaxCutsPerIter:  c.MaxCutsPerIter,
		SkipChance:      c.SkipChance,
		DryRating:       c.DryRating,
		EnforceSafePath: c.EnforceSafePath,
		Rng:             rand.New(rand.NewSource(c.RandomSeed)),
		Progress:        progress,
	}
}
