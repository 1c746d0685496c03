package extract

import (
	"strings"

	"github.com/tbxark/intakeagent/types"
)

// AcceptFunc decides whether an extracted value may enter the profile.
type AcceptFunc func(value string) bool

var notFoundPhrases = []string{
	"not found",
	"not provided",
	"not mentioned",
	"not specified",
	"n/a",
	"none",
	"unknown",
}

// Accept rejects empty values and the not-found placeholders. Values that
// merely contain "not", such as "Notre Dame", are accepted.
func Accept(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, phrase := range notFoundPhrases {
		if v == phrase || v == phrase+"." {
			return false
		}
	}
	return true
}

// LegacyAccept rejects every value containing "not" after lower-casing.
func LegacyAccept(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v != "" && !strings.Contains(v, "not")
}

// Accepted filters values through accept and trims the ones it keeps.
func Accepted(values map[types.Field]string, accept AcceptFunc) map[types.Field]string {
	if accept == nil {
		accept = Accept
	}
	out := make(map[types.Field]string, len(values))
	for _, f := range types.Fields {
		v, ok := values[f]
		if ok && accept(v) {
			out[f] = strings.TrimSpace(v)
		}
	}
	return out
}
