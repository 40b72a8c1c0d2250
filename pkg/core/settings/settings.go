// Package settings loads engine and server settings from a YAML file with
// environment overrides.
package settings

import (
	"fmt"
	"os"
	"strconv"

	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/models"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where binaries look for settings.
const DefaultPath = "config/engine.yaml"

// Settings is the parsed settings file.
type Settings struct {
	Rates   Rates  `yaml:"rates"`
	Server  Server `yaml:"server"`
	Store   Store  `yaml:"store"`
	Workers int    `yaml:"workers"`
}

// Rates are default rates applied when a project leaves them unset.
type Rates struct {
	DiscountRate           float64 `yaml:"discount_rate"`
	UrbanMaintenanceRate   float64 `yaml:"urban_maintenance_rate"`
	EducationSurchargeRate float64 `yaml:"education_surcharge_rate"`
	IncomeTaxRate          float64 `yaml:"income_tax_rate"`
	StatutorySurplusRate   float64 `yaml:"statutory_surplus_rate"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Store struct {
	SnapshotDir string `yaml:"snapshot_dir"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Rates: Rates{
			DiscountRate:           models.DefaultDiscountRate,
			UrbanMaintenanceRate:   models.DefaultUrbanMaintenanceRate,
			EducationSurchargeRate: models.DefaultEducationSurchargeRate,
			IncomeTaxRate:          models.DefaultIncomeTaxRate,
			StatutorySurplusRate:   models.DefaultStatutorySurplusRate,
		},
		Server:  Server{Addr: ":8080"},
		Store:   Store{SnapshotDir: ".cache/snapshots"},
		Workers: 4,
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment variables override the file:
// FEASIBILITY_ADDR, FEASIBILITY_SNAPSHOT_DIR, FEASIBILITY_DISCOUNT_RATE,
// FEASIBILITY_INCOME_TAX_RATE, FEASIBILITY_WORKERS.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	case os.IsNotExist(err):
		fmt.Printf("[SETTINGS] %s not found, using defaults\n", path)
	default:
		return s, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("FEASIBILITY_ADDR"); v != "" {
		s.Server.Addr = v
	}
	if v := os.Getenv("FEASIBILITY_SNAPSHOT_DIR"); v != "" {
		s.Store.SnapshotDir = v
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"FEASIBILITY_DISCOUNT_RATE", &s.Rates.DiscountRate},
		{"FEASIBILITY_INCOME_TAX_RATE", &s.Rates.IncomeTaxRate},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
		}
		*f.dst = parsed
	}
	if v := os.Getenv("FEASIBILITY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FEASIBILITY_WORKERS %q: %w", v, err)
		}
		s.Workers = n
	}
	return nil
}

// ProjectionDefaults converts the rates for the projection engine.
func (s Settings) ProjectionDefaults() projection.Defaults {
	return projection.Defaults{
		DiscountRate:           s.Rates.DiscountRate,
		UrbanMaintenanceRate:   s.Rates.UrbanMaintenanceRate,
		EducationSurchargeRate: s.Rates.EducationSurchargeRate,
		IncomeTaxRate:          s.Rates.IncomeTaxRate,
		StatutorySurplusRate:   s.Rates.StatutorySurplusRate,
	}
}
