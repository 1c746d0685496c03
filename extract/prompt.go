package extract

import (
	"fmt"
	"strings"

	"github.com/tbxark/intakeagent/types"
)

// BuildPrompt asks the service for every field of the utterance, one
// "Field: value" line each.
func BuildPrompt(utterance string) string {
	quoted := make([]string, 0, len(types.Fields))
	for _, f := range types.Fields {
		quoted = append(quoted, fmt.Sprintf("'%s'", f))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Extract the following details from the user input: %s. ", joinWithAnd(quoted))
	sb.WriteString("Return 'not found' for any field that is not present in the user input. ")
	sb.WriteString("Format the answer as exactly one line per field, written as the field name, a colon and the value, for example 'Name: value'. ")
	sb.WriteString("Do not add any other text.\n")
	sb.WriteString(types.FormatFieldTable("Fields", types.DescribeAll(types.Fields)))
	fmt.Fprintf(&sb, "\nUser Input: %s", utterance)
	return sb.String()
}

func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
