package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/heroes/internal/catalog"
	"github.com/roach88/heroes/internal/hero"
)

// Scenario is a scripted session against the hero catalog: a seed, a list
// of steps driving the pipeline and the gateway, and expectations checked
// after each step.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Catalog is a catalog file path, relative to the scenario file.
	// Mutually exclusive with Heroes. If both are empty the embedded
	// default catalog is used.
	Catalog string `yaml:"catalog,omitempty"`

	// Heroes is an inline seed.
	Heroes []catalog.Entry `yaml:"heroes,omitempty"`

	// PageSize is the initial page size. Zero means the pipeline default.
	PageSize int `yaml:"page_size,omitempty"`

	MatchBrand bool `yaml:"match_brand,omitempty"`

	// Latency overrides the gateway latency, e.g. "150ms".
	Latency string `yaml:"latency,omitempty"`

	// IDs pins the ids handed out by create steps, in order. If empty,
	// creates get "hero-1", "hero-2", ...
	IDs []string `yaml:"ids,omitempty"`

	Steps []Step `yaml:"steps"`

	dir string
}

// Step is one action, optionally followed by an expectation. A step with
// only an expect block is a checkpoint.
type Step struct {
	Search  *string     `yaml:"search,omitempty"`
	Page    *int        `yaml:"page,omitempty"`
	Size    *int        `yaml:"size,omitempty"`
	Create  *hero.Input `yaml:"create,omitempty"`
	Update  *UpdateStep `yaml:"update,omitempty"`
	Remove  *string     `yaml:"remove,omitempty"`
	Advance string      `yaml:"advance,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// UpdateStep patches the hero with the given id.
type UpdateStep struct {
	ID         string `yaml:"id"`
	hero.Patch `yaml:",inline"`
}

// Expect is checked against the current view and the most recent settled
// results. Unset fields are not checked.
type Expect struct {
	Total   *int     `yaml:"total,omitempty"`
	Index   *int     `yaml:"index,omitempty"`
	Names   []string `yaml:"names,omitempty"`
	First   *string  `yaml:"first,omitempty"`
	Found   *bool    `yaml:"found,omitempty"`   // last settled update
	Removed *bool    `yaml:"removed,omitempty"` // last settled remove
	Busy    *bool    `yaml:"busy,omitempty"`
}

// action returns the step's action name, or "" for a checkpoint.
func (s *Step) action() (string, int) {
	name, n := "", 0
	set := func(ok bool, label string) {
		if ok {
			name = label
			n++
		}
	}
	set(s.Search != nil, "search")
	set(s.Page != nil, "page")
	set(s.Size != nil, "size")
	set(s.Create != nil, "create")
	set(s.Update != nil, "update")
	set(s.Remove != nil, "remove")
	set(s.Advance != "", "advance")
	return name, n
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected, and the catalog path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Catalog != "" && len(s.Heroes) > 0 {
		return fmt.Errorf("catalog and heroes are mutually exclusive")
	}
	if s.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative")
	}
	if s.Latency != "" {
		d, err := time.ParseDuration(s.Latency)
		if err != nil {
			return fmt.Errorf("latency: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("latency must not be negative")
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		step := &s.Steps[i]
		name, n := step.action()
		if n > 1 {
			return fmt.Errorf("steps[%d]: exactly one action per step, got %d", i, n)
		}
		if n == 0 && step.Expect == nil {
			return fmt.Errorf("steps[%d]: needs an action or an expect block", i)
		}
		switch name {
		case "update":
			if step.Update.ID == "" {
				return fmt.Errorf("steps[%d]: update.id is required", i)
			}
		case "advance":
			d, err := time.ParseDuration(step.Advance)
			if err != nil {
				return fmt.Errorf("steps[%d]: advance: %w", i, err)
			}
			if d < 0 {
				return fmt.Errorf("steps[%d]: advance must not be negative", i)
			}
		}
	}
	return nil
}
