// Package config loads the run configuration of the feedforward CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/feedforward/internal/nn"
)

// Config captures the knobs for a training run.
type Config struct {
	// Data source: a binary dataset file, a pair of IDX files, or synthetic.
	Data      string `yaml:"data"`
	IDXImages string `yaml:"idx_images"`
	IDXLabels string `yaml:"idx_labels"`
	Synthetic bool   `yaml:"synthetic"`
	MaxLoad   int    `yaml:"max_load"`

	SplitRatio float32 `yaml:"split_ratio"`

	// Model: hidden layer sizes between the dataset width and the class count.
	Hidden     []int  `yaml:"hidden"`
	Activation string `yaml:"activation"`
	Softmax    bool   `yaml:"softmax"`

	Optimizer    string  `yaml:"optimizer"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float32 `yaml:"learning_rate"`
	Momentum     float32 `yaml:"momentum"`
	Seed         int64   `yaml:"seed"`
	TrainLimit   int     `yaml:"train_limit"`
	EvalLimit    int     `yaml:"eval_limit"`
	LogEvery     int     `yaml:"log_every"`
	Verbose      bool    `yaml:"verbose"`
	Parallel     bool    `yaml:"parallel"`

	Show  int    `yaml:"show"`
	Chart string `yaml:"chart"`
}

// Overrides captures CLI supplied values.
//
// Seed is a pointer because 0 is a valid seed; nil leaves it unchanged.
type Overrides struct {
	Data         string
	Synthetic    bool
	Optimizer    string
	Epochs       int
	BatchSize    int
	LearningRate float32
	Seed         *int64
	TrainLimit   int
	EvalLimit    int
	Show         int
	Chart        string
	Verbose      bool
}

// Supported optimizer names.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SplitRatio:   0.8,
		Hidden:       []int{128},
		Activation:   string(nn.ReLU),
		Softmax:      true,
		Optimizer:    OptimizerSGD,
		Epochs:       5,
		BatchSize:    32,
		LearningRate: 0.1,
		Seed:         1,
		LogEvery:     100,
	}
}

// Load reads a Config from YAML on top of Default.
//
// The result is not validated, so that CLI overrides can complete it; call
// Validate after ApplyOverrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Data != "" {
		c.Data = o.Data
	}
	if o.Synthetic {
		c.Synthetic = true
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.TrainLimit > 0 {
		c.TrainLimit = o.TrainLimit
	}
	if o.EvalLimit > 0 {
		c.EvalLimit = o.EvalLimit
	}
	if o.Show > 0 {
		c.Show = o.Show
	}
	if o.Chart != "" {
		c.Chart = o.Chart
	}
	if o.Verbose {
		c.Verbose = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Data == "" && c.IDXImages == "" && !c.Synthetic {
		return errors.New("no data source: set data, idx_images/idx_labels or synthetic")
	}
	if (c.IDXImages == "") != (c.IDXLabels == "") {
		return errors.New("idx_images and idx_labels must be set together")
	}
	if c.SplitRatio <= 0 || c.SplitRatio >= 1 {
		return fmt.Errorf("split_ratio must be in (0, 1) (got %g)", c.SplitRatio)
	}
	for i, n := range c.Hidden {
		if n <= 0 {
			return fmt.Errorf("hidden[%d] must be > 0 (got %d)", i, n)
		}
	}
	if _, err := nn.ParseActivation(c.Activation); err != nil {
		return err
	}
	if c.Optimizer != OptimizerSGD && c.Optimizer != OptimizerAdam {
		return fmt.Errorf("optimizer must be %q or %q (got %q)", OptimizerSGD, OptimizerAdam, c.Optimizer)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if c.TrainLimit < 0 || c.EvalLimit < 0 || c.MaxLoad < 0 || c.Show < 0 {
		return errors.New("limits must not be negative")
	}
	if c.LogEvery <= 0 {
		return fmt.Errorf("log_every must be > 0 (got %d)", c.LogEvery)
	}
	return nil
}
