package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"TootBot/internal/app"
	"TootBot/internal/config"
	"TootBot/internal/logging"
	"TootBot/internal/usecase"
)

func onThisDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onthisday [access_token]",
		Short: "Toot today's scheduled \"Was geschah am\" entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComposer(cmd, args, usecase.KindOnThisDay)
		},
	}
	addRunFlags(cmd)
	cmd.Flags().Int("item", 0, "Post entry N instead of the scheduled one")
	cmd.Flags().Bool("force", false, "Post even if the entry was already tooted today")
	return cmd
}

func planetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planets [access_token]",
		Short: "Toot the current distance of Earth to the other planets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComposer(cmd, args, usecase.KindPlanets)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the toots recorded for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closeLog, err := setup(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			day, _ := cmd.Flags().GetString("day")
			records, err := app.History(cmd.Context(), cfg, day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No toots recorded.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s %-10s item=%d id=%s %s\n", rec.Day, rec.Kind, rec.Item, rec.StatusID, rec.URL)
			}
			return nil
		},
	}
	cmd.Flags().String("day", "", "Day to list as YYYY-MM-DD (default today)")
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print the toot instead of posting it")
	cmd.Flags().Bool("daemon", false, "Keep running and post at every full hour")
}

func runComposer(cmd *cobra.Command, args []string, name string) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if len(args) == 1 {
		cfg.Mastodon.AccessToken = args[0]
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	daemon, _ := cmd.Flags().GetBool("daemon")
	opts := app.Options{DryRun: dryRun, Out: cmd.OutOrStdout()}
	if f := cmd.Flags().Lookup("force"); f != nil {
		opts.Force, _ = cmd.Flags().GetBool("force")
	}

	var item *int
	if cmd.Flags().Changed("item") {
		n, _ := cmd.Flags().GetInt("item")
		item = &n
	}

	application, err := app.New(cmd.Context(), cfg, logger, opts)
	if err != nil {
		return err
	}
	defer application.Close()

	if daemon {
		return application.RunDaemon(cmd.Context(), name)
	}
	return application.Run(cmd.Context(), name, item)
}

func setup(cmd *cobra.Command) (config.Config, *slog.Logger, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Load(path)

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	slog.SetDefault(logger)

	return cfg, logger, func() { _ = closer.Close() }, nil
}
