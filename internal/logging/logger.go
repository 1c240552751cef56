// Package logging provides config-driven categorized logging for tweetgen.
// One zap logger is built at startup; each subsystem asks for a named child
// through Get. Categories can be switched off individually in config.
//
// The interactive widget owns the terminal, so in that mode logs go to the
// configured file or nowhere.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tweetgen/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config, wiring
	CategoryCatalog   Category = "catalog"   // Catalog loading
	CategoryResolver  Category = "resolver"  // Local picks and remote requests
	CategoryGenerator Category = "generator" // State machine transitions
	CategoryServer    Category = "server"    // Tweet API server
	CategoryWidget    Category = "widget"    // Terminal widget events
	CategoryClipboard Category = "clipboard" // Clipboard writes
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	current config.LoggingConfig
	file    *os.File
)

// Initialize builds the process logger from cfg. When interactive is true
// and no file is configured, logging is disabled.
func Initialize(cfg config.LoggingConfig, interactive bool) error {
	var sink zapcore.WriteSyncer
	var f *os.File

	switch {
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		sink = zapcore.Lock(f)
	case interactive:
		install(zap.NewNop(), cfg, nil)
		return nil
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	logger, err := New(cfg, sink)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}
	install(logger, cfg, f)

	Get(CategoryBoot).Debug("Logging initialized",
		zap.String("level", cfg.EffectiveLevel()),
		zap.String("format", cfg.Format),
		zap.String("file", cfg.File))
	return nil
}

// New builds a logger writing to sink according to cfg.
func New(cfg config.LoggingConfig, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.EffectiveLevel())
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "", "text", "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("invalid log format %q (valid: text, json)", cfg.Format)
	}

	return zap.New(zapcore.NewCore(enc, sink, level)), nil
}

// Use installs logger as the process logger, for tests and embedding.
func Use(logger *zap.Logger, cfg config.LoggingConfig) {
	install(logger, cfg, nil)
}

func install(logger *zap.Logger, cfg config.LoggingConfig, f *os.File) {
	mu.Lock()
	defer mu.Unlock()
	_ = root.Sync()
	if file != nil {
		file.Close()
	}
	root, current, file = logger, cfg, f
}

// Get returns the logger for a category. Disabled categories get a no-op
// logger.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !current.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return root.Named(string(category))
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}

// Close flushes and releases the log file, leaving a no-op logger behind.
func Close() {
	install(zap.NewNop(), config.LoggingConfig{}, nil)
}
