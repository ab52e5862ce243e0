package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "tootbot",
		Short:         "Mastodon bot posting Wikipedia anniversaries and planet distances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Path to the YAML config (default $TOOTBOT_CONFIG)")

	root.AddCommand(
		onThisDayCmd(),
		planetsCmd(),
		historyCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tootbot:", err)
		stop()
		os.Exit(1)
	}
}
