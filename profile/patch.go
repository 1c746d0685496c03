package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tbxark/intakeagent/types"
)

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
	OperationRemove  = "remove"
)

// Operation is a single RFC 6902 operation on the profile document.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// ValuePath returns the JSON pointer of a field's value.
func ValuePath(field types.Field) string {
	return "/values/" + escapeJSONPointer(string(field))
}

// AcquiredPath returns the JSON pointer of a field's acquired flag.
func AcquiredPath(field types.Field) string {
	return "/acquired/" + escapeJSONPointer(string(field))
}

// MergeOps builds the operations that merge values into a profile.
// Fields are emitted in canonical order.
func MergeOps(values map[types.Field]string) []Operation {
	ops := make([]Operation, 0, len(values)*2)
	for _, f := range types.Fields {
		v, ok := values[f]
		if !ok {
			continue
		}
		ops = append(ops,
			Operation{Op: OperationReplace, Path: ValuePath(f), Value: v},
			Operation{Op: OperationReplace, Path: AcquiredPath(f), Value: true},
		)
	}
	return ops
}

// Apply patches the profile in place. Unknown field paths are rejected.
func (p *Profile) Apply(ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}
	if err := validateOperations(ops); err != nil {
		return fmt.Errorf("patch validation failed: %w", err)
	}
	p.ensure()

	currentJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	ops = FixOperation(currentJSON, ops)

	patchJSON, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}

	var result Profile
	if err := json.Unmarshal(modifiedJSON, &result); err != nil {
		return fmt.Errorf("patch would result in an invalid profile: %w", err)
	}
	p.Values = result.Values
	p.Acquired = result.Acquired
	p.ensure()
	return nil
}

// FixOperation turns replace into add when the target is missing and drops
// removes of missing paths.
func FixOperation(currentJSON []byte, ops []Operation) []Operation {
	var doc any
	if err := json.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}

	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Op {
		case OperationReplace:
			if !pathExists(doc, op.Path) {
				op.Op = OperationAdd
			}
			fixed = append(fixed, op)
		case OperationRemove:
			if pathExists(doc, op.Path) {
				fixed = append(fixed, op)
			}
		default:
			fixed = append(fixed, op)
		}
	}
	return fixed
}

func validateOperations(ops []Operation) error {
	for i, op := range ops {
		field, ok := fieldFromPath(op.Path)
		if !ok || !field.Valid() {
			return fmt.Errorf("operation %d: path %q is not a profile field", i, op.Path)
		}
	}
	return nil
}

func fieldFromPath(path string) (types.Field, bool) {
	for _, prefix := range []string{"/values/", "/acquired/"} {
		if strings.HasPrefix(path, prefix) {
			return types.Field(unescapeJSONPointer(strings.TrimPrefix(path, prefix))), true
		}
	}
	return "", false
}

func pathExists(doc any, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}

	tokens := strings.Split(path[1:], "/")
	cur := doc
	for _, token := range tokens {
		token = unescapeJSONPointer(token)
		switch node := cur.(type) {
		case map[string]any:
			value, ok := node[token]
			if !ok {
				return false
			}
			cur = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return false
			}
			cur = node[index]
		default:
			return false
		}
	}
	return true
}

func escapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
