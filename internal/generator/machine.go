// Package generator implements the per-widget generation state machine:
// category selection, the single in-flight request, the copied flag and
// the animation trigger.
//
// The machine is driven from one event loop in practice (the Bubble Tea
// Update loop), but every method is safe for concurrent use so timer
// callbacks and plain goroutines can touch it too.
package generator

import (
	"context"
	"errors"
	"sync"
	"time"

	"tweetgen/internal/resolver"

	"github.com/benbjohnson/clock"
)

// DefaultCopiedWindow is how long the copied flag stays set.
const DefaultCopiedWindow = 2 * time.Second

// GenerateAnchor names the element the animation bursts from.
const GenerateAnchor = "generate-button"

var (
	// ErrNothingToCopy is returned by Copy outside the Success state.
	ErrNothingToCopy = errors.New("no generated tweet to copy")
	// ErrNoClipboard is returned by Copy when no clipboard is configured.
	ErrNoClipboard = errors.New("no clipboard configured")
	// ErrClosed is returned by operations on a torn-down machine.
	ErrClosed = errors.New("generator closed")
)

// Animator is the decorative burst played after a successful generation.
type Animator interface {
	Trigger(anchor string)
}

// Clipboard receives copied tweets.
type Clipboard interface {
	Copy(text string) error
}

// Machine is the generation state machine of one widget instance.
type Machine struct {
	resolver  resolver.Resolver
	animator  Animator
	clipboard Clipboard
	clock     clock.Clock
	window    time.Duration
	anchor    string
	notify    func()

	mu       sync.Mutex
	state    State
	category string
	text     string
	err      error
	seq      uint64

	copied    bool
	copySeq   uint64
	copyTimer *clock.Timer
	closed    bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithAnimator sets the animation collaborator.
func WithAnimator(a Animator) Option {
	return func(m *Machine) { m.animator = a }
}

// WithClipboard sets the clipboard collaborator.
func WithClipboard(c Clipboard) Option {
	return func(m *Machine) { m.clipboard = c }
}

// WithClock sets the clock used for the copied-flag timer.
func WithClock(c clock.Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithCopiedWindow sets how long the copied flag stays set.
func WithCopiedWindow(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.window = d
		}
	}
}

// WithAnchor sets the anchor passed to the animator.
func WithAnchor(anchor string) Option {
	return func(m *Machine) { m.anchor = anchor }
}

// WithNotify registers a callback run after state changes that happen
// off the caller's path (the copied flag expiring). It is called without
// the machine lock held.
func WithNotify(fn func()) Option {
	return func(m *Machine) { m.notify = fn }
}

// New returns a machine in AwaitingSelection that resolves through r.
func New(r resolver.Resolver, opts ...Option) *Machine {
	m := &Machine{
		resolver: r,
		clock:    clock.New(),
		window:   DefaultCopiedWindow,
		anchor:   GenerateAnchor,
		state:    AwaitingSelection,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns the current observable state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:    m.state,
		Category: m.category,
		Text:     m.text,
		Err:      m.err,
		Copied:   m.copied,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Copied reports whether the transient copied flag is set.
func (m *Machine) Copied() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copied
}

// Select chooses the category for the next generation. It moves
// AwaitingSelection to Idle. A displayed result stays displayed until the
// next generation replaces it. Selection is ignored while Loading, for an
// empty id, and after Close; the return value reports whether it applied.
func (m *Machine) Select(categoryID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || categoryID == "" || m.state == Loading {
		return false
	}
	m.category = categoryID
	if m.state == AwaitingSelection {
		m.state = Idle
	}
	return true
}

// Begin moves the machine to Loading and returns the request to resolve.
// It is a no-op returning false when no category is selected, when a
// request is already in flight, or after Close.
func (m *Machine) Begin() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.category == "" || !canGenerate(m.state) {
		return Request{}, false
	}
	m.seq++
	m.state = Loading
	m.text = ""
	m.err = nil
	return Request{Seq: m.seq, Category: m.category}, true
}

// Fetch resolves req. It does not touch machine state and may run on any
// goroutine; hand the result to Complete.
func (m *Machine) Fetch(ctx context.Context, req Request) Result {
	text, err := m.resolver.Resolve(ctx, req.Category)
	return Result{Request: req, Text: text, Err: err}
}

// Complete settles the in-flight request: Loading becomes Success or
// Failed. Results for a superseded request, or arriving after Close, are
// discarded and Complete returns false. On success the animator is
// triggered once, after the state change.
func (m *Machine) Complete(res Result) bool {
	m.mu.Lock()
	if m.closed || m.state != Loading || res.Request.Seq != m.seq {
		m.mu.Unlock()
		return false
	}
	if res.Err != nil {
		m.state = Failed
		m.err = res.Err
		m.mu.Unlock()
		return true
	}
	m.state = Success
	m.text = res.Text
	animator, anchor := m.animator, m.anchor
	m.mu.Unlock()

	if animator != nil {
		animator.Trigger(anchor)
	}
	return true
}

// Generate runs Begin, Fetch and Complete in the caller's goroutine. It
// reports whether a request was made.
func (m *Machine) Generate(ctx context.Context) bool {
	req, ok := m.Begin()
	if !ok {
		return false
	}
	m.Complete(m.Fetch(ctx, req))
	return true
}

// Copy sends the displayed tweet to the clipboard and sets the copied
// flag for the copied window. Copying again restarts the window. The
// flag is not set when the clipboard fails.
func (m *Machine) Copy() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state != Success {
		m.mu.Unlock()
		return ErrNothingToCopy
	}
	if m.clipboard == nil {
		m.mu.Unlock()
		return ErrNoClipboard
	}
	text, cb := m.text, m.clipboard
	m.mu.Unlock()

	if err := cb.Copy(text); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.copyTimer != nil {
		m.copyTimer.Stop()
	}
	m.copySeq++
	seq := m.copySeq
	m.copied = true
	m.copyTimer = m.clock.AfterFunc(m.window, func() { m.expireCopied(seq) })
	return nil
}

func (m *Machine) expireCopied(seq uint64) {
	m.mu.Lock()
	if m.closed || seq != m.copySeq || !m.copied {
		m.mu.Unlock()
		return
	}
	m.copied = false
	m.copyTimer = nil
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Close tears the machine down: pending timers are cancelled, the
// animator is stopped when it supports it, and every later write is a
// no-op. Close is idempotent.
func (m *Machine) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.copyTimer != nil {
		m.copyTimer.Stop()
		m.copyTimer = nil
	}
	animator := m.animator
	m.mu.Unlock()

	if s, ok := animator.(interface{ Stop() }); ok {
		s.Stop()
	}
}
