package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed hero.cue
var schemaSource string

// Error codes for catalog validation.
const (
	ErrCodeSchema      = "E101" // entry violates the CUE schema
	ErrCodeDuplicateID = "E102" // id used by an earlier entry
	ErrCodeEmpty       = "E103" // catalog has no entries
)

// ValidationError describes one problem in a catalog.
type ValidationError struct {
	Code    string `json:"code"`
	Index   int    `json:"index"` // entry index, -1 for catalog-level errors
	ID      string `json:"id,omitempty"`
	Path    string `json:"path,omitempty"` // CUE path of the offending field
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: heroes[%d].%s: %s", e.Code, e.Index, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: heroes[%d]: %s", e.Code, e.Index, e.Message)
}

// schema holds the compiled #Hero definition. cue.Context is not safe for
// concurrent use, so validation is serialized.
var schema struct {
	once sync.Once
	mu   sync.Mutex
	ctx  *cue.Context
	def  cue.Value
	err  error
}

func heroSchema() (*cue.Context, cue.Value, error) {
	schema.once.Do(func() {
		schema.ctx = cuecontext.New()
		v := schema.ctx.CompileString(schemaSource, cue.Filename("hero.cue"))
		if err := v.Err(); err != nil {
			schema.err = fmt.Errorf("compile hero schema: %w", err)
			return
		}
		schema.def = v.LookupPath(cue.ParsePath("#Hero"))
		if !schema.def.Exists() {
			schema.err = fmt.Errorf("hero schema: #Hero not defined")
		}
	})
	return schema.ctx, schema.def, schema.err
}

// Validate checks every entry against the hero schema and checks ids for
// uniqueness. It returns all problems found, in entry order; an empty
// result means the catalog is valid.
func (c *Catalog) Validate() ([]ValidationError, error) {
	ctx, def, err := heroSchema()
	if err != nil {
		return nil, err
	}

	schema.mu.Lock()
	defer schema.mu.Unlock()

	var problems []ValidationError
	if len(c.Heroes) == 0 {
		problems = append(problems, ValidationError{
			Code:    ErrCodeEmpty,
			Index:   -1,
			Message: "catalog has no heroes",
		})
		return problems, nil
	}

	seen := make(map[string]int, len(c.Heroes))
	for i, entry := range c.Heroes {
		unified := def.Unify(ctx.Encode(entry))
		if verr := unified.Validate(cue.Concrete(true)); verr != nil {
			for _, ce := range cueerrors.Errors(verr) {
				format, args := ce.Msg()
				problems = append(problems, ValidationError{
					Code:    ErrCodeSchema,
					Index:   i,
					ID:      entry.ID,
					Path:    pathString(ce.Path()),
					Message: fmt.Sprintf(format, args...),
				})
			}
		}

		if entry.ID == "" {
			continue
		}
		if first, dup := seen[entry.ID]; dup {
			problems = append(problems, ValidationError{
				Code:    ErrCodeDuplicateID,
				Index:   i,
				ID:      entry.ID,
				Path:    "id",
				Message: fmt.Sprintf("id %q already used by heroes[%d]", entry.ID, first),
			})
			continue
		}
		seen[entry.ID] = i
	}
	return problems, nil
}

func pathString(path []string) string {
	return strings.Join(path, ".")
}
