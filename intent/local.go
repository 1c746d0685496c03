package intent

import (
	"context"
	"strings"
)

// LocalRecognizer matches the raw input against keywords, ignoring case.
// The input is not trimmed.
type LocalRecognizer struct {
	AffirmKeywords []string
}

func NewLocalRecognizer() *LocalRecognizer {
	return &LocalRecognizer{
		AffirmKeywords: []string{"yes"},
	}
}

func (r *LocalRecognizer) RecognizeIntent(ctx context.Context, input string) (Intent, error) {
	for _, keyword := range r.AffirmKeywords {
		if strings.EqualFold(input, keyword) {
			return Affirm, nil
		}
	}
	return DoNothing, nil
}
