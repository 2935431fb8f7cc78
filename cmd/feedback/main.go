// cmd/feedback/main.go
//
// This is the entry point for the feedback CLI.
// Running `feedback` from any directory opens the form for that directory.
//
// Flow:
// 1. Make sure .feedback/ exists (config.yaml + logs/)
// 2. Load config, open the structured log and the activity logbook
// 3. Launch the TUI

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/feedback/internal/config"
	"github.com/kingrea/feedback/internal/logbook"
	"github.com/kingrea/feedback/internal/logging"
	"github.com/kingrea/feedback/internal/tui"
)

// options holds the flag values shared by the commands.
type options struct {
	projectDir string
	debug      bool
	legacy     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "feedback",
		Short: "Collect rated feedback from the terminal",
		Long: `feedback opens a small form: pick a rating, write a review, press Enter.

Submitted feedback is kept in memory for the session only. Settings live in
.feedback/config.yaml inside the project directory.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.projectDir, "dir", "C", "", "project directory (default: current directory)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug entries to .feedback/logs/feedback.log")
	root.AddCommand(newInitCmd(opts))
	return root
}

func newInitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .feedback/ with a default config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveProjectDir(opts.projectDir)
			if err != nil {
				return err
			}
			if err := config.InitDir(dir); err != nil {
				return err
			}
			cfg, err := config.NewConfig(dir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("legacy-guard") {
				if err := cfg.SetLegacyGuard(opts.legacy); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", cfg.ProjectConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.legacy, "legacy-guard", false, "require strictly more than min_length characters before Send is enabled")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runForm(opts *options) error {
	dir, err := resolveProjectDir(opts.projectDir)
	if err != nil {
		return err
	}
	if err := config.InitDir(dir); err != nil {
		return fmt.Errorf("initializing %s: %w", config.WorkspaceDir, err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPath(), opts.debug)
	if err != nil {
		return err
	}
	defer logger.Close()

	lb, err := logbook.New(cfg.ActivityLogPath())
	if err != nil {
		logger.Warn("activity logbook unavailable", zap.Error(err))
		lb = nil
	}

	rules := cfg.Rules()
	logger.Info("form started",
		zap.String("project", cfg.ProjectDir),
		zap.Int("min_length", rules.MinLength),
		zap.Bool("legacy_guard", rules.LegacyGuard),
		zap.Int("seed", len(cfg.Project.Seed)))

	app := tui.NewApp(cfg, tui.WithLogger(logger.Logger), tui.WithLogbook(lb))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	stats := app.Collection().Stats()
	logger.Info("form closed", zap.Int("count", stats.Count), zap.Float64("average", stats.Average))
	return nil
}

// resolveProjectDir returns dir as an absolute path, defaulting to the
// working directory.
func resolveProjectDir(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}
