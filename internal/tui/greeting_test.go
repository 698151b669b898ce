package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/calcpad/calcpad/internal/config"
)

func testGreeting(flakes int) GreetingModel {
	m := NewGreetingModel(&config.Greeting{
		Message:    "Happy Holidays",
		Snowflakes: flakes,
		FrameMS:    50,
	}, 1)
	m.Width = 60
	m.Height = 30
	return m
}

func TestGreetingModel_Configure(t *testing.T) {
	m := testGreeting(10)
	if got := m.Flakes(); got != 10 {
		t.Fatalf("Flakes() = %d, want 10", got)
	}
	if m.Frame != 50*time.Millisecond {
		t.Errorf("Frame = %v, want 50ms", m.Frame)
	}

	tests := []struct {
		name  string
		in    config.Greeting
		flake int
		frame time.Duration
	}{
		{"shrink", config.Greeting{Message: "a", Snowflakes: 3, FrameMS: 20}, 3, 20 * time.Millisecond},
		{"grow", config.Greeting{Message: "b", Snowflakes: 25, FrameMS: 20}, 25, 20 * time.Millisecond},
		{"negative count", config.Greeting{Message: "c", Snowflakes: -1, FrameMS: 20}, 0, 20 * time.Millisecond},
		{"zero frame", config.Greeting{Message: "d", Snowflakes: 1}, 1, config.DefaultFrameMS * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.in
			m.Configure(&g)
			if got := m.Flakes(); got != tt.flake {
				t.Errorf("Flakes() = %d, want %d", got, tt.flake)
			}
			if m.Frame != tt.frame {
				t.Errorf("Frame = %v, want %v", m.Frame, tt.frame)
			}
			if m.Message != tt.in.Message {
				t.Errorf("Message = %q, want %q", m.Message, tt.in.Message)
			}
		})
	}
}

func TestGreetingModel_StarTwinkles(t *testing.T) {
	m := testGreeting(0)

	m.Advance(starPeriod / 2)
	if m.StarLevel <= 0 || m.StarLevel >= 1 {
		t.Errorf("StarLevel halfway up = %v, want between 0 and 1", m.StarLevel)
	}

	m.Advance(starPeriod / 2)
	if m.StarLevel != 1 {
		t.Errorf("StarLevel at peak = %v, want 1", m.StarLevel)
	}
	if m.starUp {
		t.Error("star should be fading after reaching its peak")
	}

	m.Advance(starPeriod / 2)
	if m.StarLevel <= 0 || m.StarLevel >= 1 {
		t.Errorf("StarLevel halfway down = %v, want between 0 and 1", m.StarLevel)
	}
}

func TestGreetingModel_RibbonsSway(t *testing.T) {
	m := testGreeting(0)
	m.Advance(swayPeriod)
	if m.SwayOffset != 1 {
		t.Errorf("SwayOffset = %v, want 1", m.SwayOffset)
	}
	m.Advance(swayPeriod)
	if m.SwayOffset != -1 {
		t.Errorf("SwayOffset = %v, want -1", m.SwayOffset)
	}
}

func TestGreetingModel_SnowFalls(t *testing.T) {
	m := testGreeting(0)
	m.flakes = []snowflake{{x: 5, y: 0, speed: 2, glyph: '*'}}

	m.Advance(1)
	if got := m.flakes[0].y; got != 2 {
		t.Errorf("flake y = %v, want 2", got)
	}

	_, h := m.canvasSize()
	m.flakes[0].y = float64(h) - 0.5
	m.Advance(1)
	if got := m.flakes[0].y; got != 0 {
		t.Errorf("flake y after reaching the bottom = %v, want 0", got)
	}
}

func TestGreetingModel_IgnoresStaleFrames(t *testing.T) {
	m := testGreeting(0)
	m, cmd := m.Restart()
	if cmd == nil {
		t.Fatal("Restart() returned nil command")
	}

	m, cmd = m.Update(frameMsg{gen: m.gen - 1})
	if cmd != nil {
		t.Error("Update() with a stale frame should not schedule another tick")
	}
	if m.StarLevel != 0 {
		t.Errorf("StarLevel = %v, want 0", m.StarLevel)
	}

	m, cmd = m.Update(frameMsg{gen: m.gen})
	if cmd == nil {
		t.Error("Update() with a current frame should schedule the next tick")
	}
	if m.StarLevel == 0 {
		t.Error("StarLevel did not advance")
	}
}

func TestGreetingModel_Content(t *testing.T) {
	m := testGreeting(5)
	content := m.Content()

	for _, want := range []string{"Happy Holidays", "★", "┃", "^"} {
		if !strings.Contains(content, want) {
			t.Errorf("Content() missing %q", want)
		}
	}

	_, h := m.canvasSize()
	if got := strings.Count(content, "\n") + 1; got != h {
		t.Errorf("Content() has %d rows, want %d", got, h)
	}
}

func TestGreetingModel_WrapsLongMessage(t *testing.T) {
	m := testGreeting(0)
	m.Width = MinTerminalWidth
	m.Message = "Merry Christmas and a Happy New Year to everyone"

	content := m.Content()
	for _, word := range []string{"Merry", "Christmas", "everyone"} {
		if !strings.Contains(content, word) {
			t.Errorf("Content() missing %q", word)
		}
	}

	_, h := m.canvasSize()
	if got := strings.Count(content, "\n") + 1; got != h {
		t.Errorf("Content() has %d rows, want %d", got, h)
	}
}
