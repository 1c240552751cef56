package main

import (
	"fmt"
	"os"

	"tweetgen/internal/catalog"
	"tweetgen/internal/config"
	"tweetgen/internal/logging"
	"tweetgen/internal/resolver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	modeFlag   string
	endpoint   string

	// Wired in PersistentPreRunE
	cfg *config.Config
	cat *catalog.Catalog
	res resolver.Resolver
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tweetgen",
	Short: "Generate a tweet for a category and copy it",
	Long: `tweetgen picks a ready-made tweet for the category you choose.

Tweets come from the built-in catalog (local mode) or from a tweet service
(remote mode, POST {"category": "..."} to the configured endpoint).

Run without arguments to start the interactive widget.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd == cmd.Root())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Resolver mode: local or remote (overrides config)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Tweet service endpoint for remote mode (overrides config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, logging, the catalog and the resolver. The widget
// owns the terminal, so interactive runs only log to a file.
func setup(interactive bool) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if modeFlag != "" {
		cfg.Mode = modeFlag
	}
	if endpoint != "" {
		cfg.Remote.Endpoint = endpoint
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Initialize(cfg.Logging, interactive); err != nil {
		return err
	}
	boot := logging.Get(logging.CategoryBoot)

	cat, err = catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logging.Get(logging.CategoryCatalog).Debug("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Strings("categories", cat.IDs()))

	res, err = resolver.New(resolver.Options{
		Mode:         resolver.Mode(cfg.Mode),
		Endpoint:     cfg.Remote.Endpoint,
		Timeout:      cfg.GetRemoteTimeout(),
		MissingTweet: resolver.MissingTweetPolicy(cfg.Remote.MissingTweet),
		FallbackText: cfg.Remote.FallbackText,
		Logger:       logging.Get(logging.CategoryResolver),
	}, cat)
	if err != nil {
		return err
	}

	boot.Debug("Resolver ready", zap.String("mode", cfg.Mode), zap.String("endpoint", cfg.Remote.Endpoint))
	return nil
}
