package types

import (
	"strings"
	"testing"
)

func TestFieldValid(t *testing.T) {
	t.Parallel()
	for _, f := range Fields {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if Field("Age").Valid() || Field("name").Valid() {
		t.Error("unknown fields reported valid")
	}
}

func TestFormatFieldTable(t *testing.T) {
	t.Parallel()
	if got := FormatFieldTable("Fields", nil); got != "" {
		t.Fatalf("empty table = %q", got)
	}
	got := FormatFieldTable("Fields", DescribeAll(Fields))
	if !strings.HasPrefix(got, "# Fields:\n") {
		t.Fatalf("missing title: %q", got)
	}
	for _, f := range Fields {
		if !strings.Contains(got, string(f)) {
			t.Errorf("table is missing %s", f)
		}
	}
}
