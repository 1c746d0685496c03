package intent

import (
	"context"
	"testing"
)

func TestLocalRecognizer(t *testing.T) {
	t.Parallel()
	r := NewLocalRecognizer()
	cases := map[string]Intent{
		"yes":      Affirm,
		"Yes":      Affirm,
		"YES":      Affirm,
		"yes!":     DoNothing,
		" yes":     DoNothing,
		"yes I am": DoNothing,
		"no":       DoNothing,
		"":         DoNothing,
	}
	for input, want := range cases {
		got, err := r.RecognizeIntent(context.Background(), input)
		if err != nil {
			t.Fatalf("RecognizeIntent(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("RecognizeIntent(%q) = %s, want %s", input, got, want)
		}
	}
}
