// Package trainer fits a cascaded triplet-interpolated-feature shape
// predictor from a corpus of annotated images, producing a
// triface.Predictor ready for Encode/Decode.
package trainer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the hyperparameters of a training run. Use NewConfig to get
// a value populated with the reference defaults, then refine it with the
// Set* methods, which validate before mutating -- a violated constraint
// leaves the Config untouched and returns an error, mirroring the
// DLIB_CASSERT-guarded setters of the reference trainer.
type Config struct {
	cascadeDepth             int
	treeDepth                int
	treesPerCascade          int
	nu                       float64
	oversamplingAmount       int
	featurePoolSize          int
	lambda                   float64
	numTestSplits            int
	featurePoolRegionPadding float64
	randomSeed               string
	verbose                  bool
}

// NewConfig returns a Config populated with the reference defaults:
// CascadeDepth 10, TreeDepth 4, TreesPerCascade 500, Nu 0.1,
// OversamplingAmount 20, FeaturePoolSize 400, Lambda 0.1, NumTestSplits 20.
func NewConfig() Config {
	return Config{
		cascadeDepth:       10,
		treeDepth:          4,
		treesPerCascade:    500,
		nu:                 0.1,
		oversamplingAmount: 20,
		featurePoolSize:    400,
		lambda:             0.1,
		numTestSplits:      20,
	}
}

func (c Config) CascadeDepth() int                 { return c.cascadeDepth }
func (c Config) TreeDepth() int                    { return c.treeDepth }
func (c Config) TreesPerCascade() int              { return c.treesPerCascade }
func (c Config) Nu() float64                       { return c.nu }
func (c Config) OversamplingAmount() int           { return c.oversamplingAmount }
func (c Config) FeaturePoolSize() int              { return c.featurePoolSize }
func (c Config) Lambda() float64                   { return c.lambda }
func (c Config) NumTestSplits() int                { return c.numTestSplits }
func (c Config) FeaturePoolRegionPadding() float64  { return c.featurePoolRegionPadding }
func (c Config) RandomSeed() string                { return c.randomSeed }
func (c Config) Verbose() bool                     { return c.verbose }

func (c *Config) SetCascadeDepth(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: cascade depth must be > 0, got %d", ErrInvalidConfig, v)
	}
	c.cascadeDepth = v
	return nil
}

func (c *Config) SetTreeDepth(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: tree depth must be > 0, got %d", ErrInvalidConfig, v)
	}
	c.treeDepth = v
	return nil
}

func (c *Config) SetTreesPerCascade(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: trees per cascade must be > 0, got %d", ErrInvalidConfig, v)
	}
	c.treesPerCascade = v
	return nil
}

func (c *Config) SetNu(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%w: nu must be in (0,1], got %v", ErrInvalidConfig, v)
	}
	c.nu = v
	return nil
}

func (c *Config) SetOversamplingAmount(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: oversampling amount must be > 0, got %d", ErrInvalidConfig, v)
	}
	c.oversamplingAmount = v
	return nil
}

func (c *Config) SetFeaturePoolSize(v int) error {
	if v <= 1 {
		return fmt.Errorf("%w: feature pool size must be > 1, got %d", ErrInvalidConfig, v)
	}
	c.featurePoolSize = v
	return nil
}

func (c *Config) SetLambda(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: lambda must be > 0, got %v", ErrInvalidConfig, v)
	}
	c.lambda = v
	return nil
}

func (c *Config) SetNumTestSplits(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: num test splits must be > 0, got %d", ErrInvalidConfig, v)
	}
	c.numTestSplits = v
	return nil
}

// SetFeaturePoolRegionPadding is reserved for parity with offset-based
// cascade variants, which sample their feature pool from a padded region
// around each landmark. The triplet-interpolated feature scheme samples
// points barycentrically within the shape itself, so this setter records
// the value but it otherwise goes unused by the TIF training path.
func (c *Config) SetFeaturePoolRegionPadding(v float64) error {
	c.featurePoolRegionPadding = v
	return nil
}

func (c *Config) SetRandomSeed(v string) error {
	c.randomSeed = v
	return nil
}

func (c *Config) SetVerbose(v bool) error {
	c.verbose = v
	return nil
}

// rawConfig mirrors Config's exported field names for YAML decoding, since
// Config itself keeps its fields unexported to force construction through
// the validating setters.
type rawConfig struct {
	CascadeDepth             *int     `yaml:"cascadeDepth"`
	TreeDepth                *int     `yaml:"treeDepth"`
	TreesPerCascade          *int     `yaml:"treesPerCascade"`
	Nu                       *float64 `yaml:"nu"`
	OversamplingAmount       *int     `yaml:"oversamplingAmount"`
	FeaturePoolSize          *int     `yaml:"featurePoolSize"`
	Lambda                   *float64 `yaml:"lambda"`
	NumTestSplits            *int     `yaml:"numTestSplits"`
	FeaturePoolRegionPadding *float64 `yaml:"featurePoolRegionPadding"`
	RandomSeed               *string  `yaml:"randomSeed"`
	Verbose                  *bool    `yaml:"verbose"`
}

// LoadConfigYAML reads hyperparameters from a YAML file, starting from
// NewConfig's defaults and overriding only the keys present in the file.
func LoadConfigYAML(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("trainer: read config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("trainer: parse config %s: %w", path, err)
	}

	setters := []struct {
		apply func() error
	}{
		{func() error {
			if raw.CascadeDepth == nil {
				return nil
			}
			return cfg.SetCascadeDepth(*raw.CascadeDepth)
		}},
		{func() error {
			if raw.TreeDepth == nil {
				return nil
			}
			return cfg.SetTreeDepth(*raw.TreeDepth)
		}},
		{func() error {
			if raw.TreesPerCascade == nil {
				return nil
			}
			return cfg.SetTreesPerCascade(*raw.TreesPerCascade)
		}},
		{func() error {
			if raw.Nu == nil {
				return nil
			}
			return cfg.SetNu(*raw.Nu)
		}},
		{func() error {
			if raw.OversamplingAmount == nil {
				return nil
			}
			return cfg.SetOversamplingAmount(*raw.OversamplingAmount)
		}},
		{func() error {
			if raw.FeaturePoolSize == nil {
				return nil
			}
			return cfg.SetFeaturePoolSize(*raw.FeaturePoolSize)
		}},
		{func() error {
			if raw.Lambda == nil {
				return nil
			}
			return cfg.SetLambda(*raw.Lambda)
		}},
		{func() error {
			if raw.NumTestSplits == nil {
				return nil
			}
			return cfg.SetNumTestSplits(*raw.NumTestSplits)
		}},
		{func() error {
			if raw.FeaturePoolRegionPadding == nil {
				return nil
			}
			return cfg.SetFeaturePoolRegionPadding(*raw.FeaturePoolRegionPadding)
		}},
		{func() error {
			if raw.RandomSeed == nil {
				return nil
			}
			return cfg.SetRandomSeed(*raw.RandomSeed)
		}},
		{func() error {
			if raw.Verbose == nil {
				return nil
			}
			return cfg.SetVerbose(*raw.Verbose)
		}},
	}
	for _, s := range setters {
		if err := s.apply(); err != nil {
			return Config{}, fmt.Errorf("trainer: config %s: %w", path, err)
		}
	}

	return cfg, nil
}
