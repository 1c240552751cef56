package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"tweetgen/internal/clipboard"
	"tweetgen/internal/generator"
	"tweetgen/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var copyFlag bool

// generateCmd prints one tweet for a category
var generateCmd = &cobra.Command{
	Use:   "generate [category]",
	Short: "Print one tweet for a category",
	Long: `Generates a single tweet through the configured resolver and prints it.

Example:
  tweetgen generate humor
  tweetgen generate tech --copy
  tweetgen --mode remote generate business`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the tweet to the clipboard")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []generator.Option{}
	if copyFlag {
		opts = append(opts, generator.WithClipboard(clipboard.NewSystem(logging.Get(logging.CategoryClipboard))))
	}
	m := generator.New(res, opts...)
	defer m.Close()

	return generateOnce(ctx, cmd, m, args[0])
}

func generateOnce(ctx context.Context, cmd *cobra.Command, m *generator.Machine, category string) error {
	log := logging.Get(logging.CategoryGenerator)

	if !m.Select(category) {
		return fmt.Errorf("category is required")
	}
	m.Generate(ctx)

	snap := m.Snapshot()
	if snap.State == generator.Failed {
		log.Debug("Generation failed", zap.String("category", category), zap.Error(snap.Err))
		return fmt.Errorf("could not generate a tweet: %w", snap.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), snap.Text)

	if copyFlag {
		if err := m.Copy(); err != nil {
			return fmt.Errorf("failed to copy tweet: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}
