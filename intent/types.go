package intent

import "context"

type Intent string

const (
	Affirm    Intent = "affirm"
	DoNothing Intent = "do_nothing"
)

type Recognizer interface {
	RecognizeIntent(ctx context.Context, input string) (Intent, error)
}
