package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/cue-splitter/internal/app"
	"github.com/handiism/cue-splitter/internal/config"
	"github.com/handiism/cue-splitter/internal/deps"
	"github.com/handiism/cue-splitter/internal/logging"
	"github.com/handiism/cue-splitter/internal/media"
	"github.com/handiism/cue-splitter/internal/prompt"
	"github.com/handiism/cue-splitter/internal/resolve"
	"github.com/handiism/cue-splitter/internal/tui"
)

type rootFlags struct {
	config     string
	dryRun     bool
	transfer   bool
	jobs       int
	yes        bool
	logLevel   string
	noProgress bool
	verbose    bool
	saveConfig bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "cuesplit [cue-file-or-dir ...]",
		Short:         "Split audio files based on cue sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	fs := rootCmd.Flags()
	fs.StringVarP(&flags.config, "config", "c", "", "Configuration file path (default $XDG_CONFIG_HOME/cuesplit/config.toml)")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "Only print the ffmpeg commands")
	fs.BoolVar(&flags.transfer, "transfer", false, "Move the audio file to the output directory after splitting")
	fs.IntVarP(&flags.jobs, "jobs", "j", 0, "Number of concurrent splits (default from config)")
	fs.BoolVarP(&flags.yes, "yes", "y", false, "Do not ask for confirmation of the cue file list")
	fs.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&flags.noProgress, "no-progress", false, "Print plain progress lines instead of the progress view")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "Show a line for every split track")
	fs.BoolVar(&flags.saveConfig, "save-config", false, "Write the effective settings to the config file and exit")

	return rootCmd
}

func configPath(flags rootFlags) (string, error) {
	if flags.config != "" {
		return flags.config, nil
	}
	return config.DefaultPath()
}

func loadSettings(cmd *cobra.Command, flags rootFlags) (*config.Settings, error) {
	path, err := configPath(flags)
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("jobs") {
		settings.MaxConcurrentSplits = flags.jobs
	}
	if flags.logLevel != "" {
		settings.LogLevel = flags.logLevel
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func run(cmd *cobra.Command, flags rootFlags, args []string) error {
	settings, err := loadSettings(cmd, flags)
	if err != nil {
		return err
	}

	if flags.saveConfig {
		path, err := configPath(flags)
		if err != nil {
			return err
		}
		if err := settings.Save(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)
		return nil
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	if err := deps.Missing(deps.CheckBinaries(deps.Defaults(settings.FFmpegBinary, settings.FFprobeBinary))); err != nil {
		return fmt.Errorf("missing required tools:\n%w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	console := prompt.NewConsole(cmd.InOrStdin(), out)

	var progress *tui.Progress
	if !flags.noProgress && !flags.dryRun && tui.Enabled(os.Stdout) {
		progress = tui.NewProgress(os.Stdin, os.Stdout, flags.verbose)
	}

	a := app.New(app.Options{
		Settings:  settings,
		DryRun:    flags.dryRun,
		Transfer:  flags.transfer,
		AssumeYes: flags.yes,
		Verbose:   flags.verbose,
		Out:       out,
		Console:   console,
		Prober:    media.NewFFprobe(settings.FFprobeBinary),
		Runner:    media.NewFFmpeg(settings.FFmpegBinary),
		Actions:   resolve.ExternalActions{Editor: settings.Editor, Viewer: settings.Viewer},
		Progress:  progress,
		Logger:    logger,
	})

	if flags.dryRun {
		console.Notify("Dry run, only printing ffmpeg commands")
	}

	report, err := a.Run(ctx, args)
	if report != nil {
		printReport(out, console, report)
	}
	if err != nil && ctx.Err() != nil {
		return context.Canceled
	}
	return err
}

