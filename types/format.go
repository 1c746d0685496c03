package types

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatFieldTable renders fields as a markdown table for prompts.
func FormatFieldTable(title string, fields []FieldInfo) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("# ")
	buf.WriteString(title)
	buf.WriteString(":\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Description")
	for _, field := range fields {
		_ = table.Append(field.DisplayName, field.Description)
	}
	_ = table.Render()
	return buf.String()
}
