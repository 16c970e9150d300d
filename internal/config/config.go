// Package config loads and validates the advisor's runtime settings from
// YAML. Loading, normalization, and validation are split so tests can
// exercise each stage on its own.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/campusworks/advisor-agent/internal/advising"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// DefaultSystemPrompt frames the model as a course advisor bound to the
// registered tools.
const DefaultSystemPrompt = `You are an academic course advisor. Use the available tools to inspect the catalog, review the student's schedule, and enroll or drop courses on their behalf. Confirm the outcome of every change. When a request cannot be satisfied, explain why using the tool results.`

// StoreConfig selects where enrollment state lives.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	// Path is the SQLite database file; ignored by the memory driver.
	Path string `yaml:"path"`
}

type Config struct {
	Model         string            `yaml:"model"`
	MaxIterations int               `yaml:"max_iterations"`
	CreditLimit   int               `yaml:"credit_limit"`
	SystemPrompt  string            `yaml:"system_prompt"`
	Store         StoreConfig       `yaml:"store"`
	Catalog       []advising.Course `yaml:"catalog"`
}

// Default returns a runnable configuration: in-memory store, built-in
// catalog, standard iteration and credit bounds.
func Default() Config {
	return Config{
		MaxIterations: 20,
		CreditLimit:   advising.DefaultCreditLimit,
		SystemPrompt:  DefaultSystemPrompt,
		Store:         StoreConfig{Driver: DriverMemory},
		Catalog:       advising.DefaultCatalog(),
	}
}

// Load reads a YAML file over the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills gaps and canonicalizes fields so Validate and the rest
// of the program see one shape.
func (c *Config) Normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 20
	}
	if c.CreditLimit == 0 {
		c.CreditLimit = advising.DefaultCreditLimit
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if len(c.Catalog) == 0 {
		c.Catalog = advising.DefaultCatalog()
	}
	for i := range c.Catalog {
		c.Catalog[i].Code = strings.ToUpper(strings.TrimSpace(c.Catalog[i].Code))
	}
}

// Validate rejects configurations that cannot produce a working advisor.
func (c *Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("config: max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.CreditLimit < 0 {
		return fmt.Errorf("config: credit_limit must be positive, got %d", c.CreditLimit)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("config: sqlite store requires a path")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	seen := make(map[string]bool, len(c.Catalog))
	for _, course := range c.Catalog {
		if course.Code == "" {
			return fmt.Errorf("config: catalog entry with empty code")
		}
		if course.Credits <= 0 {
			return fmt.Errorf("config: course %s has non-positive credits", course.Code)
		}
		if seen[course.Code] {
			return fmt.Errorf("config: duplicate catalog code %s", course.Code)
		}
		seen[course.Code] = true
	}
	return nil
}
