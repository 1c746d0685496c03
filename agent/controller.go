package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/followup"
	"github.com/tbxark/intakeagent/intent"
	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/transcript"
	"github.com/tbxark/intakeagent/types"
)

const (
	FeedbackRequest = "All details are collected. Can you provide feedback?"
	FeedbackThanks  = "Thank you for providing the Feedback!"
	SummaryHeader   = "Thank you for providing all the information!\nHere's what I have gathered:\n"
	ConfirmPrompt   = "If everything looks good, please confirm with YES, or let me know if there's anything you'd like to change."
)

// Controller runs one dialogue turn at a time against a Session.
type Controller struct {
	extractor  extract.Extractor
	generator  followup.Generator
	recognizer intent.Recognizer
	accept     extract.AcceptFunc
	sink       transcript.Sink
}

type ControllerOption func(*Controller)

func WithAcceptFunc(accept extract.AcceptFunc) ControllerOption {
	return func(c *Controller) {
		c.accept = accept
	}
}

func WithRecognizer(recognizer intent.Recognizer) ControllerOption {
	return func(c *Controller) {
		c.recognizer = recognizer
	}
}

// WithSink forwards the full history to sink after every turn.
func WithSink(sink transcript.Sink) ControllerOption {
	return func(c *Controller) {
		c.sink = sink
	}
}

func NewController(extractor extract.Extractor, generator followup.Generator, opts ...ControllerOption) *Controller {
	c := &Controller{
		extractor:  extractor,
		generator:  generator,
		recognizer: intent.NewLocalRecognizer(),
		accept:     extract.Accept,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NewLLMController uses client for both extraction and follow-up questions.
func NewLLMController(client llm.Client, opts ...ControllerOption) *Controller {
	return NewController(
		extract.NewLLMExtractor(client, extract.KeyValueParser{}),
		followup.NewLLMGenerator(client),
		opts...,
	)
}

// Turn processes one user utterance. Service failures never produce an
// error; only persistence failures do.
func (c *Controller) Turn(ctx context.Context, session *Session, input string) (*Response, error) {
	if session.Profile == nil {
		session.Profile = profile.New()
	}
	if session.Phase == "" {
		session.Phase = types.PhaseCollecting
	}
	metadata := map[string]string{}

	if session.Phase == types.PhaseAwaitingFeedback || session.Phase == types.PhaseFeedbackReceived {
		session.Feedback = append(session.Feedback, input)
	}
	// Extraction runs on every turn, so details given with the feedback
	// still update the profile.
	c.extractInto(ctx, session, input, metadata)

	var reply string
	if !session.Profile.IsComplete() {
		q := c.generator.NextQuestion(ctx, session.Profile.MissingFields(), session.Profile)
		reply = q.Text
		session.Phase = types.PhaseCollecting
		metadata["followup_field"] = string(q.Field)
		metadata["followup_outcome"] = string(q.Outcome)
	} else {
		reply = c.completedReply(ctx, session, input)
	}

	session.LatestReply = reply
	session.UpdatedAt = time.Now()
	session.Messages = append(session.Messages,
		schema.UserMessage(input),
		schema.AssistantMessage(reply, nil),
	)
	slog.Debug("turn finished", "session", session.ID, "phase", session.Phase, "turn_count", session.TurnCount, "missing", len(session.Profile.MissingFields()))

	if c.sink != nil {
		if err := c.sink.Save(ctx, session.ID, session.Messages); err != nil {
			return nil, fmt.Errorf("failed to save transcript: %w", err)
		}
	}

	return &Response{
		Message:   reply,
		Phase:     session.Phase,
		Profile:   session.Profile.Clone(),
		TurnCount: session.TurnCount,
		Metadata:  metadata,
	}, nil
}

func (c *Controller) extractInto(ctx context.Context, session *Session, input string, metadata map[string]string) {
	result := c.extractor.Extract(ctx, input)
	metadata["extraction_outcome"] = string(result.Outcome)

	accepted := extract.Accepted(result.Values, c.accept)
	if corrected := correctedFields(session.Profile, accepted); len(corrected) > 0 {
		metadata["corrected_fields"] = strings.Join(corrected, ",")
		slog.Info("profile fields corrected", "session", session.ID, "fields", corrected)
	}
	if err := session.Profile.Apply(profile.MergeOps(accepted)); err != nil {
		slog.Error("profile patch failed, merging directly", "err", err)
		for f, v := range accepted {
			session.Profile.Merge(f, v)
		}
	}
}

// completedReply is only reached when no follow-up question was produced
// this turn.
func (c *Controller) completedReply(ctx context.Context, session *Session, input string) string {
	if c.isAffirmation(ctx, input) {
		if session.TurnCount >= 1 {
			session.Phase = types.PhaseFeedbackReceived
			return FeedbackThanks
		}
		session.TurnCount++
		session.Phase = types.PhaseAwaitingFeedback
		return FeedbackRequest
	}
	if session.TurnCount >= 1 {
		session.Phase = types.PhaseFeedbackReceived
		return FeedbackThanks
	}
	session.Phase = types.PhaseConfirming
	return SummaryHeader + session.Profile.Summary() + "\n" + ConfirmPrompt
}

func (c *Controller) isAffirmation(ctx context.Context, input string) bool {
	it, err := c.recognizer.RecognizeIntent(ctx, input)
	if err != nil {
		slog.Warn("intent recognition failed", "err", err)
		return false
	}
	return it == intent.Affirm
}

func correctedFields(current *profile.Profile, accepted map[types.Field]string) []string {
	var out []string
	for _, f := range types.Fields {
		v, ok := accepted[f]
		if !ok {
			continue
		}
		if old, acquired := current.Value(f); acquired && old != v {
			out = append(out, string(f))
		}
	}
	return out
}
