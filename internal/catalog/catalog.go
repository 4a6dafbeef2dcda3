// Package catalog loads seed catalogs of heroes from YAML and validates them
// against an embedded CUE schema.
//
// A catalog describes the initial canonical sequence. Entries carry a
// created_ago duration instead of an absolute timestamp so the same file
// produces fresh-looking records whenever it is loaded.
//
// The schema encodes the rules of the hero form: a name of at least two
// characters, a non-empty power and a brand of "DC" or "Marvel". The store
// itself enforces none of these; they apply to catalog files only.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/heroes/internal/hero"
)

//go:embed heroes.yaml
var defaultCatalog []byte

// Entry is one hero in a catalog file.
type Entry struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Power      string `yaml:"power" json:"power"`
	Brand      string `yaml:"brand" json:"brand"`
	CreatedAgo string `yaml:"created_ago" json:"created_ago"`
}

// Catalog is a parsed catalog file.
type Catalog struct {
	Heroes []Entry `yaml:"heroes"`
}

// Default returns the embedded 25-hero catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads and parses a catalog file. It does not validate; call Validate.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML. Unknown fields are rejected so typos such as
// "create_ago" fail loudly.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &c, nil
}

// Records converts the entries to hero records, in file order, with
// CreatedAt = now - created_ago.
//
// Returns an error if an entry's created_ago is not a valid duration.
func (c *Catalog) Records(now time.Time) ([]hero.Record, error) {
	out := make([]hero.Record, len(c.Heroes))
	for i, e := range c.Heroes {
		ago, err := time.ParseDuration(e.CreatedAgo)
		if err != nil {
			return nil, fmt.Errorf("heroes[%d] (%s): created_ago: %w", i, e.ID, err)
		}
		out[i] = hero.Record{
			ID:        e.ID,
			Name:      e.Name,
			Brand:     e.Brand,
			Power:     e.Power,
			CreatedAt: now.Add(-ago).UnixMilli(),
		}
	}
	return out, nil
}
