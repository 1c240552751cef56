package ui

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/lipgloss"
)

const (
	SparkleCount    = 30
	SparkleDuration = time.Second

	// Canvas margin around the anchored element, in cells.
	SparkleMarginX = 8
	SparkleMarginY = 3

	// Pixel-to-cell scale for the travel distances below.
	pxPerCol = 10.0
	pxPerRow = 20.0
)

// SparkleColors are the burst colours: gold, pink, blue, purple, green, orange.
var SparkleColors = []lipgloss.Color{
	"#FFCC55",
	"#FF7799",
	"#66BBFF",
	"#AA99DD",
	"#77DDAA",
	"#FFAA66",
}

var sparkleGlyphs = []string{"✦", "✧", "•", "·"}

// Side is one of the eight half-edges a sparkle starts from.
type Side int

const (
	TopLeft Side = iota
	TopRight
	RightTop
	RightBottom
	BottomLeft
	BottomRight
	LeftTop
	LeftBottom
	sideCount
)

// Particle is one sparkle. Start is a position on the anchor's border in
// unit coordinates; DX/DY is the travel in pixels at full progress.
type Particle struct {
	Side     Side
	StartX   float64
	StartY   float64
	DX       float64
	DY       float64
	Size     float64
	Color    lipgloss.Color
	Delay    time.Duration
	Duration time.Duration
}

// Random is the entropy Sparkles draws from. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// Sparkles is the burst animation played around the generate button.
// It implements generator.Animator; Stop cancels a running burst.
type Sparkles struct {
	clock    clock.Clock
	rand     Random
	duration time.Duration

	mu        sync.Mutex
	anchor    string
	particles []Particle
	started   time.Time
	active    bool
	gen       uint64
	timer     *clock.Timer
}

// SparklesOption configures Sparkles.
type SparklesOption func(*Sparkles)

// WithSparkleClock sets the clock used for progress and teardown.
func WithSparkleClock(c clock.Clock) SparklesOption {
	return func(s *Sparkles) { s.clock = c }
}

// WithSparkleRandom sets the entropy source.
func WithSparkleRandom(r Random) SparklesOption {
	return func(s *Sparkles) { s.rand = r }
}

// WithSparkleDuration sets how long a burst lasts.
func WithSparkleDuration(d time.Duration) SparklesOption {
	return func(s *Sparkles) {
		if d > 0 {
			s.duration = d
		}
	}
}

// NewSparkles creates an idle animator.
func NewSparkles(opts ...SparklesOption) *Sparkles {
	s := &Sparkles{
		clock:    clock.New(),
		rand:     globalRandom{},
		duration: SparkleDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger starts a new burst around anchor, replacing any running one.
func (s *Sparkles) Trigger(anchor string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen

	s.anchor = anchor
	s.particles = make([]Particle, SparkleCount)
	for i := range s.particles {
		s.particles[i] = s.newParticle()
	}
	s.started = s.clock.Now()
	s.active = true
	s.timer = s.clock.AfterFunc(s.duration, func() { s.expire(gen) })
}

func (s *Sparkles) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.clear()
}

// Stop ends the current burst immediately.
func (s *Sparkles) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	s.clear()
}

func (s *Sparkles) clear() {
	s.active = false
	s.particles = nil
	s.timer = nil
}

// Active reports whether a burst is running.
func (s *Sparkles) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Anchor returns the anchor of the running burst, or "".
func (s *Sparkles) Anchor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ""
	}
	return s.anchor
}

// Particles returns a copy of the running burst's particles.
func (s *Sparkles) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Particle(nil), s.particles...)
}

func (s *Sparkles) newParticle() Particle {
	r := s.rand
	p := Particle{
		Side:     Side(r.IntN(int(sideCount))),
		Size:     r.Float64()*4 + 3,
		Color:    SparkleColors[r.IntN(len(SparkleColors))],
		Duration: time.Duration((r.Float64()*0.5 + 0.5) * float64(s.duration)),
		Delay:    time.Duration(r.Float64() * 0.2 * float64(s.duration)),
	}

	// Each half-edge pushes sparkles outward, drifting toward its own corner.
	outward := func() float64 { return r.Float64()*60 + 20 }
	switch p.Side {
	case TopLeft:
		p.StartX, p.StartY = r.Float64()*0.5, 0
		p.DX, p.DY = (r.Float64()-0.8)*100, -outward()
	case TopRight:
		p.StartX, p.StartY = 0.5+r.Float64()*0.5, 0
		p.DX, p.DY = (r.Float64()+0.3)*100, -outward()
	case RightTop:
		p.StartX, p.StartY = 1, r.Float64()*0.5
		p.DX, p.DY = outward(), (r.Float64()-0.8)*100
	case RightBottom:
		p.StartX, p.StartY = 1, 0.5+r.Float64()*0.5
		p.DX, p.DY = outward(), (r.Float64()+0.3)*100
	case BottomLeft:
		p.StartX, p.StartY = r.Float64()*0.5, 1
		p.DX, p.DY = (r.Float64()-0.8)*100, outward()
	case BottomRight:
		p.StartX, p.StartY = 0.5+r.Float64()*0.5, 1
		p.DX, p.DY = (r.Float64()+0.3)*100, outward()
	case LeftTop:
		p.StartX, p.StartY = 0, r.Float64()*0.5
		p.DX, p.DY = -outward(), (r.Float64()-0.8)*100
	default:
		p.StartX, p.StartY = 0, 0.5+r.Float64()*0.5
		p.DX, p.DY = -outward(), (r.Float64()+0.3)*100
	}
	return p
}

// Progress returns how far p has travelled at elapsed, in [0,1), and
// whether it is visible at all.
func (p Particle) Progress(elapsed time.Duration) (float64, bool) {
	t := elapsed - p.Delay
	if t < 0 || p.Duration <= 0 || t >= p.Duration {
		return 0, false
	}
	return float64(t) / float64(p.Duration), true
}

type cell struct {
	glyph string
	color lipgloss.Color
}

// Render draws content with the running burst around it. The output always
// carries the sparkle margin so layout does not shift when a burst starts
// or ends. Sparkles only appear when the burst belongs to anchor.
func (s *Sparkles) Render(anchor, content string) string {
	lines := strings.Split(content, "\n")
	w := lipgloss.Width(content)
	h := len(lines)
	rows := h + 2*SparkleMarginY
	cols := w + 2*SparkleMarginX

	canvas := make([][]cell, rows)
	for i := range canvas {
		canvas[i] = make([]cell, cols)
	}

	s.mu.Lock()
	if s.active && s.anchor == anchor {
		elapsed := s.clock.Since(s.started)
		for _, p := range s.particles {
			progress, ok := p.Progress(elapsed)
			if !ok {
				continue
			}
			// Travel eases out to 70% of the full distance.
			eased := 1 - math.Pow(1-progress, 2)
			x := float64(SparkleMarginX) + p.StartX*float64(max(w-1, 0)) + p.DX*0.7*eased/pxPerCol
			y := float64(SparkleMarginY) + p.StartY*float64(max(h-1, 0)) + p.DY*0.7*eased/pxPerRow
			col, row := int(math.Round(x)), int(math.Round(y))
			if row < 0 || row >= rows || col < 0 || col >= cols {
				continue
			}
			if row >= SparkleMarginY && row < SparkleMarginY+h && col >= SparkleMarginX && col < SparkleMarginX+w {
				continue // behind the content
			}
			glyph := sparkleGlyphs[min(int(progress*float64(len(sparkleGlyphs))), len(sparkleGlyphs)-1)]
			canvas[row][col] = cell{glyph: glyph, color: p.Color}
		}
	}
	s.mu.Unlock()

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		if r >= SparkleMarginY && r < SparkleMarginY+h {
			line := lines[r-SparkleMarginY]
			writeCells(&b, canvas[r][:SparkleMarginX])
			b.WriteString(line)
			b.WriteString(strings.Repeat(" ", w-lipgloss.Width(line)))
			writeCells(&b, canvas[r][SparkleMarginX+w:])
			continue
		}
		writeCells(&b, canvas[r])
	}
	return b.String()
}

func writeCells(b *strings.Builder, cells []cell) {
	for _, c := range cells {
		if c.glyph == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(c.glyph))
	}
}
