package main

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/tbxark/intakeagent/transcript"
)

func newTranscriptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Inspect stored conversations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored session keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTranscripts(cmd.Context(), do.MustInvoke[transcript.Store](a.di), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [session]",
		Short: "Print the messages of a stored session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := "messages"
			if len(args) == 1 {
				session = args[0]
			}
			return showTranscript(cmd.Context(), do.MustInvoke[transcript.Store](a.di), session, cmd.OutOrStdout())
		},
	})
	return cmd
}

func listTranscripts(ctx context.Context, store transcript.Store, out io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

func showTranscript(ctx context.Context, store transcript.Store, session string, out io.Writer) error {
	messages, err := store.Load(ctx, session)
	if err != nil {
		return fmt.Errorf("load %q: %w", session, err)
	}
	for _, msg := range messages {
		fmt.Fprintf(out, "%s: %s\n", msg.Role, msg.Content)
	}
	return nil
}
