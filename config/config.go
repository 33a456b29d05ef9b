package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aluiziolira/go-scrape-sizes/models"
)

// Config holds extractor configuration.
type Config struct {
	Dir            string
	Inputs         []models.Input
	VerifyCategory bool
	MetricsFile    string
	Verbose        bool
}

var expectedCategories = map[string]string{
	"mascotas": "Mascotas",
	"hogar":    "Hogar",
	"hombre":   "Hombre",
	"mujer":    "Mujer",
	"niños":    "Niños",
}

// DefaultConfig returns the five catalog pages in the working directory.
func DefaultConfig() *Config {
	return &Config{
		Dir: ".",
		Inputs: []models.Input{
			{Path: "mascotas.html", Key: "mascotas"},
			{Path: "hogar.html", Key: "hogar"},
			{Path: "hombre.html", Key: "hombre"},
			{Path: "mujer.html", Key: "mujer"},
			{Path: "niños.html", Key: "niños"},
		},
	}
}

// ExpectedCategory returns the display label a page for key should carry.
func ExpectedCategory(key string) (string, bool) {
	label, ok := expectedCategories[key]
	return label, ok
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("input dir cannot be empty")
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("at least one input is required")
	}
	for i, in := range c.Inputs {
		if strings.TrimSpace(in.Path) == "" {
			return fmt.Errorf("input %d: path cannot be empty", i)
		}
		if c.VerifyCategory {
			if _, ok := ExpectedCategory(in.Key); !ok {
				return fmt.Errorf("input %d: unknown category key %q", i, in.Key)
			}
		}
	}
	return nil
}

// ResolvedInputs returns the inputs with relative paths joined onto Dir.
func (c *Config) ResolvedInputs() []models.Input {
	out := make([]models.Input, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		if !filepath.IsAbs(in.Path) {
			in.Path = filepath.Join(c.Dir, in.Path)
		}
		out = append(out, in)
	}
	return out
}

// EnvString returns the trimmed value of name if it is set and non-empty.
func EnvString(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvBool parses name as a boolean if it is set.
func EnvBool(name string) (bool, bool, error) {
	value, ok := EnvString(name)
	if !ok {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, true, nil
}
