package tui

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/calcpad/calcpad/internal/config"
)

// Animation constants
const (
	starPeriod   = 1.2 // Seconds for one star brightness swing
	swayPeriod   = 2.0 // Seconds for one ribbon swing
	treeHeight   = 8   // Rows of foliage
	trunkHeight  = 2
	canvasHeight = 18 // Rows used when the terminal height is unknown
)

var snowGlyphs = []rune{'*', '·', '.', '+'}

// frameMsg advances the greeting animation. gen discards ticks scheduled
// before the screen was last restarted.
type frameMsg struct {
	gen int
	at  time.Time
}

type snowflake struct {
	x, y  float64
	speed float64 // Rows per second
	drift float64 // Columns per second
	glyph rune
}

// GreetingModel is the decorative greeting screen
type GreetingModel struct {
	Message string
	Frame   time.Duration

	flakes []snowflake
	rng    *rand.Rand

	star      *gween.Tween
	starUp    bool
	StarLevel float32 // 0 dim, 1 bright

	sway       *gween.Tween
	swayRight  bool
	SwayOffset float32 // -1 .. 1

	gen int

	// UI state
	Width  int
	Height int

	Help help.Model
	Keys greetingKeyMap
}

// NewGreetingModel creates a greeting screen from the greeting preferences
func NewGreetingModel(g *config.Greeting, seed int64) GreetingModel {
	m := GreetingModel{
		rng:       rand.New(rand.NewSource(seed)),
		star:      gween.New(0, 1, starPeriod, ease.InOutSine),
		starUp:    true,
		sway:      gween.New(-1, 1, swayPeriod, ease.InOutQuad),
		swayRight: true,
		Help:      help.New(),
		Keys:      newGreetingKeyMap(),
	}
	m.Configure(g)
	return m
}

// Configure applies greeting preferences, keeping existing flakes where possible
func (m *GreetingModel) Configure(g *config.Greeting) {
	if g == nil {
		g = &config.Greeting{Message: config.DefaultMessage, Snowflakes: config.DefaultSnowflakes, FrameMS: config.DefaultFrameMS}
	}
	m.Message = g.Message
	m.Frame = time.Duration(g.FrameMS) * time.Millisecond
	if m.Frame <= 0 {
		m.Frame = config.DefaultFrameMS * time.Millisecond
	}

	count := g.Snowflakes
	if count < 0 {
		count = 0
	}
	if len(m.flakes) > count {
		m.flakes = m.flakes[:count]
	}
	w, h := m.canvasSize()
	for len(m.flakes) < count {
		f := m.newFlake(w)
		f.y = m.rng.Float64() * float64(h)
		m.flakes = append(m.flakes, f)
	}
}

// Flakes returns the number of snowflakes on screen
func (m GreetingModel) Flakes() int {
	return len(m.flakes)
}

// Init starts the animation
func (m GreetingModel) Init() tea.Cmd {
	return m.tick()
}

// Restart invalidates pending ticks and schedules a new one
func (m GreetingModel) Restart() (GreetingModel, tea.Cmd) {
	m.gen++
	return m, m.tick()
}

func (m GreetingModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.Frame, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// Update advances the animation on each frame
func (m GreetingModel) Update(msg tea.Msg) (GreetingModel, tea.Cmd) {
	frame, ok := msg.(frameMsg)
	if !ok || frame.gen != m.gen {
		return m, nil
	}
	m.Advance(float32(m.Frame.Seconds()))
	return m, m.tick()
}

// Advance moves the animation forward by dt seconds
func (m *GreetingModel) Advance(dt float32) {
	level, done := m.star.Update(dt)
	m.StarLevel = level
	if done {
		m.starUp = !m.starUp
		if m.starUp {
			m.star = gween.New(0, 1, starPeriod, ease.InOutSine)
		} else {
			m.star = gween.New(1, 0, starPeriod, ease.InOutSine)
		}
	}

	offset, done := m.sway.Update(dt)
	m.SwayOffset = offset
	if done {
		m.swayRight = !m.swayRight
		if m.swayRight {
			m.sway = gween.New(-1, 1, swayPeriod, ease.InOutQuad)
		} else {
			m.sway = gween.New(1, -1, swayPeriod, ease.InOutQuad)
		}
	}

	w, h := m.canvasSize()
	for i := range m.flakes {
		f := &m.flakes[i]
		f.y += f.speed * float64(dt)
		f.x += f.drift * float64(dt)
		if f.x < 0 {
			f.x += float64(w)
		}
		if f.x >= float64(w) {
			f.x -= float64(w)
		}
		if f.y >= float64(h) {
			*f = m.newFlake(w)
		}
	}
}

func (m *GreetingModel) newFlake(width int) snowflake {
	return snowflake{
		x:     m.rng.Float64() * float64(width),
		y:     0,
		speed: 1 + m.rng.Float64()*3,
		drift: m.rng.Float64()*1.5 - 0.75,
		glyph: snowGlyphs[m.rng.Intn(len(snowGlyphs))],
	}
}

// canvasSize is the drawable area inside the application container
func (m GreetingModel) canvasSize() (int, int) {
	width, height := m.Width, m.Height
	if width == 0 {
		width, _ = terminalSize()
	}
	w := width - 6
	h := canvasHeight
	if height > 0 {
		// Header, footer and borders take eight rows
		h = height - 8
	}
	if w < MinTerminalWidth-6 {
		w = MinTerminalWidth - 6
	}
	if h < treeHeight+trunkHeight+3 {
		h = treeHeight + trunkHeight + 3
	}
	return w, h
}

// View renders the greeting screen
func (m GreetingModel) View() string {
	return RenderApplicationContainer(m.Content(), m.Help.View(m.Keys), m.Width)
}

type cell struct {
	ch    rune
	style *lipgloss.Style
}

var (
	snowStyle     = lipgloss.NewStyle().Foreground(SnowColor)
	treeStyle     = lipgloss.NewStyle().Foreground(TreeColor)
	trunkStyle    = lipgloss.NewStyle().Foreground(TrunkColor)
	ribbonStyle   = lipgloss.NewStyle().Foreground(RibbonColor).Bold(true)
	ornamentStyle = func() []lipgloss.Style {
		styles := make([]lipgloss.Style, len(OrnamentColors))
		for i, c := range OrnamentColors {
			styles[i] = lipgloss.NewStyle().Foreground(c).Bold(true)
		}
		return styles
	}()
)

// Content renders the scene without the container
func (m GreetingModel) Content() string {
	w, h := m.canvasSize()
	canvas := make([][]cell, h)
	for y := range canvas {
		canvas[y] = make([]cell, w)
		for x := range canvas[y] {
			canvas[y][x] = cell{ch: ' '}
		}
	}
	put := func(x, y int, ch rune, style *lipgloss.Style) {
		if y >= 0 && y < h && x >= 0 && x < w {
			canvas[y][x] = cell{ch: ch, style: style}
		}
	}

	for _, f := range m.flakes {
		put(int(f.x), int(f.y), f.glyph, &snowStyle)
	}

	// Tree, centered, with the message on the row below the trunk
	center := w / 2
	top := (h - treeHeight - trunkHeight - 3) / 2
	star := m.starStyle()
	put(center, top, '★', &star)

	shift := int(m.SwayOffset * 2)
	for i := 0; i < treeHeight; i++ {
		y := top + 1 + i
		for dx := -i; dx <= i; dx++ {
			x := center + dx
			switch {
			case (dx+i+shift)%4 == 0 && i > 0:
				put(x, y, '~', &ribbonStyle)
			case (dx*7+i*3)%5 == 0:
				put(x, y, 'o', &ornamentStyle[(i+dx)%len(ornamentStyle)])
			default:
				put(x, y, '^', &treeStyle)
			}
		}
	}
	for i := 0; i < trunkHeight; i++ {
		put(center-1, top+1+treeHeight+i, '┃', &trunkStyle)
		put(center, top+1+treeHeight+i, '┃', &trunkStyle)
	}

	lines := make([]string, 0, h+2)
	for _, row := range canvas {
		lines = append(lines, renderRow(row))
	}

	// Long messages wrap onto the rows below the trunk
	msgRow := top + 1 + treeHeight + trunkHeight + 1
	for i, text := range strings.Split(wordwrap.String(m.Message, w), "\n") {
		row := msgRow + i
		if row >= len(lines) {
			break
		}
		lines[row] = MessageStyle.Width(w).Align(lipgloss.Center).Render(strings.TrimSpace(text))
	}

	return strings.Join(lines, "\n")
}

// starStyle maps the tweened brightness to one of three star colors
func (m GreetingModel) starStyle() lipgloss.Style {
	color := StarDimColor
	switch {
	case m.StarLevel > 0.66:
		color = StarBrightColor
	case m.StarLevel > 0.33:
		color = StarColor
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// renderRow groups runs of equally styled cells into single renders
func renderRow(row []cell) string {
	var b strings.Builder
	var run []rune
	var style *lipgloss.Style
	flush := func() {
		if len(run) == 0 {
			return
		}
		if style == nil {
			b.WriteString(string(run))
		} else {
			b.WriteString(style.Render(string(run)))
		}
		run = run[:0]
	}
	for _, c := range row {
		if c.style != style {
			flush()
			style = c.style
		}
		run = append(run, c.ch)
	}
	flush()
	return b.String()
}
