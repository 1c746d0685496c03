package profile

import (
	"fmt"

	"github.com/tbxark/intakeagent/types"
)

// PrefillOps returns the operations that bring current up to the non-empty
// values in initial. Values already equal are skipped.
func PrefillOps(current *Profile, initial map[types.Field]string) []Operation {
	changed := make(map[types.Field]string, len(initial))
	for _, f := range types.Fields {
		v, ok := initial[f]
		if !ok || v == "" {
			continue
		}
		if current.Acquired[f] && current.Values[f] == v {
			continue
		}
		changed[f] = v
	}
	return MergeOps(changed)
}

// Prefill seeds the profile with values known before the conversation.
func (p *Profile) Prefill(initial map[types.Field]string) error {
	for f := range initial {
		if !f.Valid() {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	if err := p.Apply(PrefillOps(p, initial)); err != nil {
		return fmt.Errorf("failed to apply initial values: %w", err)
	}
	return nil
}
