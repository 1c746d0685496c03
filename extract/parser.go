package extract

import (
	"regexp"
	"strings"

	"github.com/tbxark/intakeagent/types"
)

// Parser turns the service reply into a value for every field.
type Parser interface {
	Parse(text string) map[types.Field]string
}

// normalizeValue maps any spelling of the placeholder onto types.NotFound.
func normalizeValue(value string) string {
	if strings.EqualFold(strings.TrimSuffix(value, "."), types.NotFound) {
		return types.NotFound
	}
	return value
}

func emptyValues() map[types.Field]string {
	values := make(map[types.Field]string, len(types.Fields))
	for _, f := range types.Fields {
		values[f] = types.NotFound
	}
	return values
}

// SubstringParser matches a field when its name occurs anywhere in a line
// and takes the text after the last colon. When several names occur in one
// line the last field in canonical order wins.
type SubstringParser struct{}

func (SubstringParser) Parse(text string) map[types.Field]string {
	values := emptyValues()
	for _, line := range strings.Split(text, "\n") {
		for _, f := range types.Fields {
			if !strings.Contains(line, string(f)) {
				continue
			}
			parts := strings.Split(line, ":")
			values[f] = normalizeValue(strings.TrimSpace(parts[len(parts)-1]))
		}
	}
	return values
}

var listPrefix = regexp.MustCompile(`^(?:[-*•>#]+|\d+[.)])\s*`)

// KeyValueParser reads "key: value" or "key=value" lines and matches the
// key exactly against a field name, ignoring case and markdown decoration.
type KeyValueParser struct{}

func (KeyValueParser) Parse(text string) map[types.Field]string {
	values := emptyValues()
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		for _, f := range types.Fields {
			if strings.EqualFold(key, string(f)) {
				values[f] = normalizeValue(value)
				break
			}
		}
	}
	return values
}

func splitKeyValue(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	idx := strings.IndexAny(line, ":=")
	if idx < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:idx])
	key = listPrefix.ReplaceAllString(key, "")
	key = strings.Trim(key, " \t*_`'\"")
	value := strings.Trim(strings.TrimSpace(line[idx+1:]), " \t*`'\"")
	return key, value, key != ""
}
