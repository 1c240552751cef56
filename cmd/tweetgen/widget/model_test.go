package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tweetgen/cmd/tweetgen/ui"
	"tweetgen/internal/catalog"
	"tweetgen/internal/generator"
	"tweetgen/internal/resolver"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakeClipboard) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.copied...)
}

func testCatalog() *catalog.Catalog {
	return catalog.MustNew(
		catalog.Category{ID: "humor", DisplayName: "Humor", Candidates: []string{"I'm on a seafood diet."}},
		catalog.Category{ID: "drafts", DisplayName: "Drafts"},
	)
}

func newTestModel(t *testing.T, res resolver.Resolver, cb generator.Clipboard) (Model, *clock.Mock) {
	t.Helper()
	cat := testCatalog()
	if res == nil {
		res = resolver.NewLocal(cat)
	}
	mock := clock.NewMock()
	styles := ui.NewStyles(ui.DarkTheme())
	m, err := New(Options{
		Catalog:   cat,
		Resolver:  res,
		Clipboard: cb,
		Styles:    &styles,
		Clock:     mock,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, mock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// collect runs cmd (expanding batches) and gathers the messages produced
// within wait. Commands that block past wait are abandoned.
func collect(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	out := make(chan tea.Msg, 32)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	run(cmd)

	var msgs []tea.Msg
	deadline := time.After(wait)
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		case <-deadline:
			return msgs
		}
	}
}

func findResolved(t *testing.T, cmd tea.Cmd) resolvedMsg {
	t.Helper()
	for _, msg := range collect(cmd, 300*time.Millisecond) {
		if r, ok := msg.(resolvedMsg); ok {
			return r
		}
	}
	t.Fatal("no resolvedMsg produced")
	return resolvedMsg{}
}

func selectFirst(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, generator.Idle, m.Snapshot().State)
	return m
}

func TestWidget_GenerateBeforeSelectIsNoop(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)

	m, cmd := update(t, m, keyRunes("g"))

	assert.Nil(t, cmd)
	assert.Equal(t, generator.AwaitingSelection, m.Snapshot().State)
	assert.Contains(t, m.View(), "Select a Category")
}

func TestWidget_SelectGenerateCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m, mock := newTestModel(t, nil, cb)
	m = selectFirst(t, m)
	assert.Equal(t, "humor", m.Snapshot().Category)

	m, cmd := update(t, m, keyRunes("g"))
	require.NotNil(t, cmd)
	assert.Equal(t, generator.Loading, m.Snapshot().State)
	assert.Contains(t, m.View(), "Generating...")

	m, cmd = update(t, m, findResolved(t, cmd))
	require.NotNil(t, cmd, "sparkle frames start")
	snap := m.Snapshot()
	assert.Equal(t, generator.Success, snap.State)
	assert.Equal(t, "I'm on a seafood diet.", snap.Text)
	assert.Contains(t, m.View(), "I'm on a seafood diet.")
	assert.True(t, m.sparkles.Active())

	m, _ = update(t, m, keyRunes("c"))
	assert.Equal(t, []string{"I'm on a seafood diet."}, cb.texts())
	assert.True(t, m.Snapshot().Copied)
	assert.Contains(t, m.View(), "Copied!")

	mock.Add(generator.DefaultCopiedWindow)
	assert.Eventually(t, func() bool { return !m.Snapshot().Copied }, time.Second, 5*time.Millisecond)

	msgs := collect(m.Init(), 300*time.Millisecond)
	require.Len(t, msgs, 1)
	assert.IsType(t, copiedExpiredMsg{}, msgs[0])
	m, cmd = update(t, m, msgs[0])
	assert.NotNil(t, cmd, "keeps listening")
	assert.Contains(t, m.View(), "c: copy")

	mock.Add(ui.SparkleDuration)
	assert.Eventually(t, func() bool { return !m.sparkles.Active() }, time.Second, 5*time.Millisecond)
	_, cmd = update(t, m, frameMsg(time.Now()))
	assert.Nil(t, cmd, "frames stop with the burst")
}

func TestWidget_FailureShowsGenericMessage(t *testing.T) {
	res := resolver.Func(func(context.Context, string) (string, error) {
		return "", &resolver.Error{Kind: resolver.ErrRemoteUnavailable, Category: "humor", Err: errors.New("dial tcp: connection refused")}
	})
	m, _ := newTestModel(t, res, nil)
	m = selectFirst(t, m)

	m, cmd := update(t, m, keyRunes("g"))
	m, _ = update(t, m, findResolved(t, cmd))

	assert.Equal(t, generator.Failed, m.Snapshot().State)
	view := m.View()
	assert.Contains(t, view, failureMessage)
	assert.NotContains(t, view, "connection refused")
	assert.False(t, m.sparkles.Active())
}

func TestWidget_EmptyCategoryFails(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "drafts", m.Snapshot().Category)

	m, cmd := update(t, m, keyRunes("g"))
	m, _ = update(t, m, findResolved(t, cmd))

	snap := m.Snapshot()
	assert.Equal(t, generator.Failed, snap.State)
	assert.ErrorIs(t, snap.Err, resolver.ErrEmptyCandidateSet)
}

func TestWidget_GenerateWhileLoadingIsNoop(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = selectFirst(t, m)

	m, cmd := update(t, m, keyRunes("g"))
	require.NotNil(t, cmd)

	m, again := update(t, m, keyRunes("g"))
	assert.Nil(t, again)
	assert.Equal(t, generator.Loading, m.Snapshot().State)
}

func TestWidget_CopyWithoutClipboard(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = selectFirst(t, m)
	m, cmd := update(t, m, keyRunes("g"))
	m, _ = update(t, m, findResolved(t, cmd))

	m, _ = update(t, m, keyRunes("c"))

	assert.False(t, m.Snapshot().Copied)
	assert.Contains(t, m.View(), "Clipboard is not available here.")
}

func TestWidget_CopyFailure(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("xclip missing")}
	m, _ := newTestModel(t, nil, cb)
	m = selectFirst(t, m)
	m, cmd := update(t, m, keyRunes("g"))
	m, _ = update(t, m, findResolved(t, cmd))

	m, _ = update(t, m, keyRunes("c"))

	assert.False(t, m.Snapshot().Copied)
	assert.Contains(t, m.View(), "Couldn't copy to the clipboard.")
}

func TestWidget_QuitDiscardsInFlight(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = selectFirst(t, m)
	m, pending := update(t, m, keyRunes("g"))

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())

	m, _ = update(t, m, findResolved(t, pending))
	assert.Equal(t, generator.Loading, m.Snapshot().State, "result after close is discarded")
}

func TestWidget_WindowResize(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})

	assert.Nil(t, cmd)
	assert.Equal(t, 36, m.width)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{Resolver: resolver.NewLocal(testCatalog())})
	assert.Error(t, err)

	_, err = New(Options{Catalog: testCatalog()})
	assert.Error(t, err)
}
