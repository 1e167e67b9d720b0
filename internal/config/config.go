// Package config loads and validates the processing constants used by the
// sounding pipeline. Configuration is resolved once at startup (defaults,
// then YAML file, then environment overrides), validated, and treated as
// immutable afterwards; every stage receives the resulting Config by
// reference and never mutates it.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "cptcli/internal/errors"
)

// Config represents the complete processing configuration.
type Config struct {
	// AreaRatio is the cone net-area correction factor, typically 0-1.
	AreaRatio float64 `yaml:"area_ratio" envconfig:"AREA_RATIO" validate:"gte=0"`

	// GammaSoil is the soil unit weight (kN/m3) used for total stress.
	GammaSoil float64 `yaml:"gamma_soil" envconfig:"GAMMA_SOIL" validate:"gt=0"`

	// GammaWater and WaterLevel drive the hydrostatic fallback for the
	// baseline pore pressure column when the input file lacks it.
	GammaWater float64 `yaml:"gamma_water" envconfig:"GAMMA_WATER" validate:"gt=0"`
	WaterLevel float64 `yaml:"water_level" envconfig:"WATER_LEVEL"`

	// PRef is the reference pressure (kPa) used by the behavior solver.
	PRef float64 `yaml:"p_ref" envconfig:"P_REF" validate:"gt=0"`

	// RollingWindow is the centered smoothing window length for fs and qt.
	// A window of 1 disables smoothing.
	RollingWindow int `yaml:"rolling_window" envconfig:"ROLLING_WINDOW" validate:"oneof=1 3 5"`

	// MaxIter caps the fixed-point iteration of the behavior solver.
	MaxIter int `yaml:"max_iter" envconfig:"MAX_ITER" validate:"gt=0"`

	// Tolerance is the solver convergence threshold on the stress exponent.
	Tolerance float64 `yaml:"tolerance" envconfig:"TOLERANCE" validate:"gt=0"`

	// SecondaryIndices enables the Cd and Ib classification columns.
	SecondaryIndices bool `yaml:"secondary_indices" envconfig:"SECONDARY_INDICES"`

	// MaxConcurrency bounds the number of workers in the solver stage.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gt=0"`

	// Sentinels are the reserved numeric codes marking invalid sensor
	// reads. Matching is exact floating-point equality.
	Sentinels []float64 `yaml:"sentinels" envconfig:"SENTINELS"`

	// Columns maps the fixed schema to the header names used in input files.
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig contains the input header names for the fixed schema.
type ColumnsConfig struct {
	Depth string `yaml:"depth" envconfig:"COL_DEPTH" validate:"required"`
	Qc    string `yaml:"qc" envconfig:"COL_QC" validate:"required"`
	Fs    string `yaml:"fs" envconfig:"COL_FS" validate:"required"`
	U2    string `yaml:"u2" envconfig:"COL_U2" validate:"required"`
	U0    string `yaml:"u0" envconfig:"COL_U0" validate:"required"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		AreaRatio:        0.8,
		GammaSoil:        18.5,
		GammaWater:       9.81,
		WaterLevel:       0,
		PRef:             100,
		RollingWindow:    1,
		MaxIter:          999,
		Tolerance:        1e-3,
		SecondaryIndices: true,
		MaxConcurrency:   4,
		Sentinels:        []float64{-9999, -8888, -7777},
		Columns: ColumnsConfig{
			Depth: "Depth (m)",
			Qc:    "qc (MPa)",
			Fs:    "fs (kPa)",
			U2:    "u2 (kPa)",
			U0:    "u0 (kPa)",
		},
	}
}

// Load resolves the configuration from defaults, the optional YAML file at
// path, and CPT_* environment variables, in that order of precedence.
// Validation failures are fatal and occur before any row is processed.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("CPT", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every configuration constraint and reports the first
// violated field. It is called once by Load; stages may assume a validated
// Config.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewConfigError(
				fieldPath(fe.Namespace()),
				fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
			)
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// fieldPath strips the root struct name from a validator namespace,
// e.g. "Config.Columns.Depth" -> "columns.depth".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}
