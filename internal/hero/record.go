// Package hero defines the hero record managed by the catalog store, the
// create/patch payloads that flow through the gateway, and the typed errors
// shared by every layer.
package hero

// Record is a single hero in the canonical sequence.
//
// ID and CreatedAt are assigned once at creation and never change. Updates
// are expressed as a Patch merged into the existing record.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Brand     string `json:"brand" yaml:"brand"`
	Power     string `json:"power,omitempty" yaml:"power,omitempty"`
	CreatedAt int64  `json:"createdAt" yaml:"created_at"` // epoch milliseconds
}

// Input is the create payload: every field of Record except the ones the
// gateway assigns.
type Input struct {
	Name  string `json:"name" yaml:"name"`
	Brand string `json:"brand" yaml:"brand"`
	Power string `json:"power,omitempty" yaml:"power,omitempty"`
}

// Patch is a partial update. A nil field leaves the current value untouched.
//
// Patch deliberately has no ID or CreatedAt field, so a merge cannot alter
// either of them.
type Patch struct {
	Name  *string `json:"name,omitempty" yaml:"name,omitempty"`
	Brand *string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Power *string `json:"power,omitempty" yaml:"power,omitempty"`
}

// Apply returns r with the non-nil fields of p merged in.
func (p Patch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Brand != nil {
		r.Brand = *p.Brand
	}
	if p.Power != nil {
		r.Power = *p.Power
	}
	return r
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Brand == nil && p.Power == nil
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string {
	return &s
}
