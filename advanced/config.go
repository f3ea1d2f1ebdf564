package advanced

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osuushi/delaunay/internal/logger"
)

// Config is the serialisable form of Options, for callers that keep their mesh
// settings in a file:
//
//	predicates: exact
//	duplicates: reject
//	super_triangle_scale: 500
//	spatial_index: false
//	log_level: debug
//
// Omitted fields keep their defaults.
type Config struct {
	// "float" (default) or "exact".
	Predicates string `yaml:"predicates"`
	// Relative tolerance of the float predicates.
	Epsilon float64 `yaml:"epsilon"`
	// "ignore" (default) or "reject".
	Duplicates         string  `yaml:"duplicates"`
	SuperTriangleScale float64 `yaml:"super_triangle_scale"`
	SpatialIndex       *bool   `yaml:"spatial_index"`
	// A zap level name. Logs go to stderr. Empty disables logging.
	LogLevel string `yaml:"log_level"`
}

func LoadConfig(r io.Reader) (Config, error) {
	var config Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(ErrConfiguration, "parsing config: %v", err)
	}
	if _, err := config.Options(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Options converts the config to mesh options.
func (c Config) Options() ([]Option, error) {
	var options []Option

	switch strings.ToLower(c.Predicates) {
	case "", "float":
		if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
			return nil, errors.Wrapf(ErrConfiguration, "epsilon must be non-negative, got %v", c.Epsilon)
		}
		options = append(options, WithEpsilon(c.Epsilon))
	case "exact":
		options = append(options, WithPredicates(ExactPredicates{}))
	default:
		return nil, errors.Wrapf(ErrConfiguration, "unknown predicates %q", c.Predicates)
	}

	switch strings.ToLower(c.Duplicates) {
	case "", "ignore":
		options = append(options, WithDuplicatePolicy(DuplicateIgnore))
	case "reject":
		options = append(options, WithDuplicatePolicy(DuplicateReject))
	default:
		return nil, errors.Wrapf(ErrConfiguration, "unknown duplicate policy %q", c.Duplicates)
	}

	if c.SuperTriangleScale != 0 {
		options = append(options, WithSuperTriangleScale(c.SuperTriangleScale))
	}
	if c.SpatialIndex != nil {
		options = append(options, WithSpatialIndex(*c.SpatialIndex))
	}

	if c.LogLevel != "" {
		level, err := logger.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}
		options = append(options, WithLogger(logger.New(os.Stderr, level)))
	}
	return options, nil
}
