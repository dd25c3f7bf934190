package grid

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Axis is the sampled range of one coordinate.
type Axis struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	// Size is the number of steps. An axis has Size+1 sample points.
	Size int `yaml:"size"`
}

// At returns the coordinate of the k-th sample point. Points are spaced
// (Max-Min)/(Size+1) apart starting at Min, so the last point falls one step
// short of Max.
func (a Axis) At(k int) float64 {
	return a.Min + float64(k)*(a.Max-a.Min)/float64(a.Size+1)
}

// Points returns the coordinates of all sample points on the axis.
func (a Axis) Points() []float64 {
	p := make([]float64, a.Size+1)
	for k := range p {
		p[k] = a.At(k)
	}
	return p
}

func (a Axis) validate(name string) error {
	if a.Size <= 0 {
		return fmt.Errorf("%s axis: size must be positive, not %d", name, a.Size)
	}
	if !(a.Max > a.Min) {
		return fmt.Errorf("%s axis: empty range [%g, %g]", name, a.Min, a.Max)
	}
	return nil
}

// Config describes a height field to sample.
type Config struct {
	// Expression is the height as a function of x, z, and optionally t.
	Expression string `yaml:"expression"`
	X          Axis   `yaml:"x"`
	Z          Axis   `yaml:"z"`
	// T, if set, binds t for every sample point.
	T *float64 `yaml:"t,omitempty"`
	// Workers limits the number of rows sampled concurrently. Zero means
	// GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`
}

// DefaultConfig returns the configuration used for anything a config file
// leaves out: both axes cover [0, 20] in 20 steps.
func DefaultConfig() Config {
	return Config{
		X: Axis{Min: 0, Max: 20, Size: 20},
		Z: Axis{Min: 0, Max: 20, Size: 20},
	}
}

// LoadConfig decodes a YAML config over the defaults and validates it. The
// expression may be left empty for the caller to fill in.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("couldn't decode config: %w", err)
	}
	if err := cfg.validateAxes(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfig loads a config from a file.
func ReadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the config describes a nonempty grid and has an
// expression.
func (cfg Config) Validate() error {
	if cfg.Expression == "" {
		return errors.New("no expression")
	}
	return cfg.validateAxes()
}

func (cfg Config) validateAxes() error {
	if err := cfg.X.validate("x"); err != nil {
		return err
	}
	if err := cfg.Z.validate("z"); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, not %d", cfg.Workers)
	}
	return nil
}
