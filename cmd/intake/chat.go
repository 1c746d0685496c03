package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/transcript"
	"github.com/tbxark/intakeagent/types"
)

type chatOptions struct {
	session string
	prefill map[string]string
}

func newChatCmd(a *app) *cobra.Command {
	opts := &chatOptions{}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive intake conversation",
		Long: `Start an interactive intake conversation on stdin/stdout.

Examples:
  intake chat
  intake chat --session alice --prefill "Name=Alice"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), a.di, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.session, "session", "s", "messages", "session key used for the transcript")
	cmd.Flags().StringToStringVar(&opts.prefill, "prefill", nil, "known values as Field=value pairs")
	return cmd
}

func parsePrefill(raw map[string]string) (map[types.Field]string, error) {
	out := make(map[types.Field]string, len(raw))
	for k, v := range raw {
		f := types.Field(k)
		if !f.Valid() {
			return nil, fmt.Errorf("unknown field %q", k)
		}
		out[f] = v
	}
	return out, nil
}

// newSessionInit restores the stored transcript and applies the prefill
// values accept allows to sessions created on first load.
func newSessionInit(store transcript.Store, prefill map[types.Field]string, accept extract.AcceptFunc) func(ctx context.Context, s *agent.Session) error {
	prefill = extract.Accepted(prefill, accept)
	return func(ctx context.Context, s *agent.Session) error {
		messages, err := store.Load(ctx, s.ID)
		switch {
		case errors.Is(err, transcript.ErrNotFound):
		case err != nil:
			return fmt.Errorf("load transcript: %w", err)
		default:
			s.Messages = messages
		}
		if len(prefill) == 0 {
			return nil
		}
		return s.Profile.Prefill(prefill)
	}
}

func runChat(ctx context.Context, di *do.Injector, opts *chatOptions, in io.Reader, out io.Writer) error {
	prefill, err := parsePrefill(opts.prefill)
	if err != nil {
		return err
	}
	store := do.MustInvoke[transcript.Store](di)
	controller, err := do.Invoke[*agent.Controller](di)
	if err != nil {
		return err
	}
	accept := acceptFunc(do.MustInvoke[*config.Config](di))
	sessions := agent.NewMemorySessionStore(newSessionInit(store, prefill, accept))
	intake := agent.NewAgent("IntakeAgent", "Collects name, place of birth, university, email and field of study", controller, sessions)
	runner := adk.NewRunner(ctx, adk.RunnerConfig{Agent: intake})

	chatCtx := agent.WithSessionKey(ctx, opts.session)
	session, err := sessions.Load(chatCtx)
	if err != nil {
		return err
	}
	for _, msg := range session.Messages {
		fmt.Fprintf(out, "%s: %s\n", msg.Role, msg.Content)
	}
	if err := sessions.Save(chatCtx, session); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "What is up?")
	for {
		fmt.Fprint(out, "user: ")
		input, rErr := reader.ReadString('\n')
		input = strings.TrimRight(input, "\r\n")
		if rErr != nil && input == "" {
			if errors.Is(rErr, io.EOF) {
				return nil
			}
			return rErr
		}
		if input == "" {
			continue
		}

		iter := runner.Run(chatCtx, []adk.Message{schema.UserMessage(input)})
		for {
			event, ok := iter.Next()
			if !ok {
				break
			}
			if event.Err != nil {
				return event.Err
			}
			msg, mErr := event.Output.MessageOutput.GetMessage()
			if mErr != nil {
				return mErr
			}
			fmt.Fprintf(out, "\nassistant: %s\n======\n", msg.Content)
		}

		session, err := sessions.Load(chatCtx)
		if err != nil {
			return err
		}
		if session.Phase == types.PhaseFeedbackReceived {
			return nil
		}
		if rErr != nil {
			return nil
		}
	}
}
