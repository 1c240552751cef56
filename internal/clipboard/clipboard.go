// Package clipboard writes generated tweets to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// ErrUnsupported is returned when the host has no usable clipboard
// (for example a headless Linux box without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// writeAll and unsupported are package-level variables to allow mocking in tests.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System copies to the operating system clipboard.
type System struct {
	logger *zap.Logger
}

// NewSystem returns a System clipboard. A nil logger disables logging.
func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{logger: logger}
}

// Copy writes text to the clipboard.
func (s *System) Copy(text string) error {
	if unsupported() {
		return ErrUnsupported
	}
	if err := writeAll(text); err != nil {
		s.logger.Warn("Clipboard write failed", zap.Error(err))
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	s.logger.Debug("Copied tweet to clipboard", zap.Int("bytes", len(text)))
	return nil
}
