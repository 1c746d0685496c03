package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/logging"
)

type app struct {
	configPath string
	di         *do.Injector
	closeLog   func() error
}

func main() {
	logging.Preinit()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("intake failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "intake",
		Short:         "Collect a personal profile through a short conversation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.AddCommand(newChatCmd(a), newTranscriptCmd(a))
	return root
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	closeLog, err := logging.Init(cfg)
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	a.di = newInjector(ctx, cfg)
	return nil
}

func (a *app) shutdown() error {
	if a.di != nil {
		if err := a.di.Shutdown(); err != nil {
			slog.Warn("shutdown failed", "error", err)
		}
	}
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}
