package profile

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tbxark/intakeagent/types"
)

// Profile holds the collected values and their acquired flags.
// A field is acquired iff its value was accepted by the controller.
type Profile struct {
	Values   map[types.Field]string `json:"values"`
	Acquired map[types.Field]bool   `json:"acquired"`
}

func New() *Profile {
	p := &Profile{
		Values:   make(map[types.Field]string, len(types.Fields)),
		Acquired: make(map[types.Field]bool, len(types.Fields)),
	}
	for _, f := range types.Fields {
		p.Values[f] = ""
		p.Acquired[f] = false
	}
	return p
}

// Merge stores value for field and marks it acquired. The caller has
// already rejected empty and not-found values.
func (p *Profile) Merge(field types.Field, value string) {
	p.ensure()
	p.Values[field] = value
	p.Acquired[field] = true
}

func (p *Profile) IsComplete() bool {
	return len(p.MissingFields()) == 0
}

// MissingFields returns the unacquired fields in canonical order.
func (p *Profile) MissingFields() []types.Field {
	return lo.Filter(types.Fields, func(f types.Field, _ int) bool {
		return !p.Acquired[f]
	})
}

func (p *Profile) Value(field types.Field) (string, bool) {
	if !p.Acquired[field] {
		return "", false
	}
	return p.Values[field], true
}

// Summary renders every field as a markdown line in canonical order.
func (p *Profile) Summary() string {
	lines := lo.Map(types.Fields, func(f types.Field, _ int) string {
		return fmt.Sprintf("**%s:** %s", f, p.Values[f])
	})
	return strings.Join(lines, "\n")
}

func (p *Profile) Clone() *Profile {
	out := New()
	for f, v := range p.Values {
		out.Values[f] = v
	}
	for f, ok := range p.Acquired {
		out.Acquired[f] = ok
	}
	return out
}

func (p *Profile) ensure() {
	if p.Values == nil {
		p.Values = make(map[types.Field]string, len(types.Fields))
	}
	if p.Acquired == nil {
		p.Acquired = make(map[types.Field]bool, len(types.Fields))
	}
}
