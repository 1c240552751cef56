// Package widget is the interactive tweet generator: pick a category, press
// g for a tweet, c to copy it.
package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tweetgen/cmd/tweetgen/ui"
	"tweetgen/internal/catalog"
	"tweetgen/internal/generator"
	"tweetgen/internal/resolver"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	frameInterval = time.Second / 30
	maxWidth      = 64
	listHeight    = 18
)

// Failure text shown to the user. The cause goes to the log.
const failureMessage = "Couldn't generate a tweet. Press g to try again."

type (
	resolvedMsg      struct{ generator.Result }
	frameMsg         time.Time
	copiedExpiredMsg struct{}
)

// Options wires the widget's collaborators.
type Options struct {
	Catalog   *catalog.Catalog
	Resolver  resolver.Resolver
	Clipboard generator.Clipboard
	Styles    *ui.Styles
	Clock     clock.Clock
	Logger    *zap.Logger

	CopiedWindow time.Duration
	Animation    time.Duration
}

type categoryItem struct {
	cat catalog.Category
}

func (i categoryItem) Title() string { return i.cat.DisplayName }
func (i categoryItem) Description() string {
	switch n := len(i.cat.Candidates); n {
	case 0:
		return "no tweets yet"
	case 1:
		return "1 tweet"
	default:
		return fmt.Sprintf("%d tweets", n)
	}
}
func (i categoryItem) FilterValue() string { return i.cat.ID + " " + i.cat.DisplayName }

// Model is the Bubble Tea model of the widget.
type Model struct {
	machine  *generator.Machine
	sparkles *ui.Sparkles
	notify   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	list    list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  ui.Styles

	logger *zap.Logger
	width  int
	status string
}

// New builds the widget. The returned model owns a generator.Machine;
// call Close when the program exits.
func New(opts Options) (Model, error) {
	if opts.Catalog == nil {
		return Model{}, errors.New("widget requires a catalog")
	}
	if opts.Resolver == nil {
		return Model{}, errors.New("widget requires a resolver")
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	styles := ui.DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	logger := opts.Logger.With(zap.String("session", uuid.NewString()))

	sparkles := ui.NewSparkles(
		ui.WithSparkleClock(opts.Clock),
		ui.WithSparkleDuration(opts.Animation),
	)

	// Capacity one: repeated expiries before the loop drains collapse.
	notify := make(chan struct{}, 1)
	machineOpts := []generator.Option{
		generator.WithAnimator(sparkles),
		generator.WithClock(opts.Clock),
		generator.WithNotify(func() {
			select {
			case notify <- struct{}{}:
			default:
			}
		}),
	}
	if opts.Clipboard != nil {
		machineOpts = append(machineOpts, generator.WithClipboard(opts.Clipboard))
	}
	if opts.CopiedWindow > 0 {
		machineOpts = append(machineOpts, generator.WithCopiedWindow(opts.CopiedWindow))
	}

	cats := opts.Catalog.List()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{cat: c})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Theme.Primary).
		BorderForeground(styles.Theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Theme.Muted).
		BorderForeground(styles.Theme.Primary)

	l := list.New(items, delegate, maxWidth, listHeight)
	l.Title = "Select a Category"
	l.Styles.Title = styles.Label
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		machine:  generator.New(opts.Resolver, machineOpts...),
		sparkles: sparkles,
		notify:   notify,
		ctx:      ctx,
		cancel:   cancel,
		list:     l,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
		logger:   logger,
		width:    maxWidth,
	}, nil
}

// Close abandons any in-flight request and tears down timers and the
// animation. Safe to call more than once.
func (m Model) Close() {
	m.cancel()
	m.machine.Close()
}

// Snapshot exposes the machine state, mostly for tests and the CLI.
func (m Model) Snapshot() generator.Snapshot {
	return m.machine.Snapshot()
}

// Init starts listening for copied-flag expiries.
func (m Model) Init() tea.Cmd {
	return m.waitForNotify()
}

func (m Model) waitForNotify() tea.Cmd {
	notify, ctx := m.notify, m.ctx
	return func() tea.Msg {
		select {
		case <-notify:
			return copiedExpiredMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) resolve(req generator.Request) tea.Cmd {
	machine, ctx := m.machine, m.ctx
	return func() tea.Msg {
		return resolvedMsg{machine.Fetch(ctx, req)}
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width-4, maxWidth)
		m.list.SetSize(m.width, min(listHeight, max(msg.Height/2, 6)))
		m.help.Width = m.width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resolvedMsg:
		return m.handleResolved(msg.Result)

	case frameMsg:
		if m.sparkles.Active() {
			return m, frame()
		}
		return m, nil

	case copiedExpiredMsg:
		return m, m.waitForNotify()

	case spinner.TickMsg:
		if m.machine.State() != generator.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Debug("Quit requested")
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(categoryItem)
		if !ok {
			return m, nil
		}
		if m.machine.Select(item.cat.ID) {
			m.status = ""
			m.logger.Debug("Category selected", zap.String("category", item.cat.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		req, ok := m.machine.Begin()
		if !ok {
			return m, nil
		}
		m.status = ""
		m.logger.Debug("Generating", zap.String("category", req.Category), zap.Uint64("seq", req.Seq))
		return m, tea.Batch(m.resolve(req), m.spinner.Tick)

	case key.Matches(msg, m.keys.Copy):
		return m.handleCopy()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleResolved(res generator.Result) (tea.Model, tea.Cmd) {
	if !m.machine.Complete(res) {
		m.logger.Debug("Discarded stale result", zap.Uint64("seq", res.Request.Seq))
		return m, nil
	}
	if res.Err != nil {
		m.logger.Warn("Tweet generation failed",
			zap.String("category", res.Request.Category),
			zap.Error(res.Err))
		return m, nil
	}
	m.logger.Debug("Tweet generated", zap.String("category", res.Request.Category))
	if m.sparkles.Active() {
		return m, frame()
	}
	return m, nil
}

func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	err := m.machine.Copy()
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, generator.ErrNothingToCopy):
		// Nothing on screen yet.
	case errors.Is(err, generator.ErrNoClipboard):
		m.status = "Clipboard is not available here."
	default:
		m.logger.Warn("Copy failed", zap.Error(err))
		m.status = "Couldn't copy to the clipboard."
	}
	return m, nil
}

// View renders the widget.
func (m Model) View() string {
	s := m.styles
	snap := m.machine.Snapshot()

	sections := []string{
		s.Header.Render("Tweet Generator"),
		m.list.View(),
	}

	if snap.Category != "" {
		sections = append(sections, s.Muted.Render("Category: ")+s.Label.Render(m.displayName(snap.Category)))
	}

	switch snap.State {
	case generator.Loading:
		sections = append(sections, m.spinner.View()+" "+s.Muted.Render("Generating..."))
	case generator.Success:
		card := s.Tweet.Width(m.width).Render(snap.Text)
		hint := s.CopyHint.Render("c: copy")
		if snap.Copied {
			hint = s.CopiedHint.Render("✓ Copied!")
		}
		sections = append(sections, card, hint)
	case generator.Failed:
		sections = append(sections, s.Error.Render(failureMessage))
	}

	if m.status != "" {
		sections = append(sections, s.Error.Render(m.status))
	}

	button := s.ButtonDisabled.Render("Generate Tweet")
	if snap.State == generator.Idle || snap.State == generator.Success || snap.State == generator.Failed {
		button = s.Button.Render("Generate Tweet")
	}
	sections = append(sections,
		m.sparkles.Render(generator.GenerateAnchor, button),
		s.Footer.Render(m.help.View(m.keys)),
	)

	return s.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) displayName(id string) string {
	for _, it := range m.list.Items() {
		if ci, ok := it.(categoryItem); ok && ci.cat.ID == id {
			return ci.cat.DisplayName
		}
	}
	return id
}
