package main

import (
	"fmt"

	"tweetgen/cmd/tweetgen/ui"
	"tweetgen/cmd/tweetgen/widget"
	"tweetgen/internal/clipboard"
	"tweetgen/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// runInteractive launches the widget in the alternate screen.
func runInteractive() error {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	log := logging.Get(logging.CategoryWidget)

	model, err := widget.New(widget.Options{
		Catalog:      cat,
		Resolver:     res,
		Clipboard:    clipboard.NewSystem(logging.Get(logging.CategoryClipboard)),
		Styles:       &styles,
		Logger:       log,
		CopiedWindow: cfg.GetCopiedWindow(),
		Animation:    cfg.GetAnimationDuration(),
	})
	if err != nil {
		return err
	}
	defer model.Close()

	log.Info("Widget started", zap.String("mode", cfg.Mode))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("widget error: %w", err)
	}
	return nil
}
