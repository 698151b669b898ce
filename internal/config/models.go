package config

import (
	"fmt"
	"strings"

	"github.com/calcpad/calcpad/internal/calculator"
)

// CurrentVersion is the config file format version.
const CurrentVersion = 1

// Start screens for the terminal UI.
const (
	ScreenCalculator = "calculator"
	ScreenGreeting   = "greeting"
)

// Config represents the entire user configuration file.
type Config struct {
	Version     int          `yaml:"version"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
	Server      *Server      `yaml:"server,omitempty"`
}

// Preferences holds calculator and terminal UI preferences.
type Preferences struct {
	RepeatEquals string    `yaml:"repeat_equals"` // "noop" or "repeat"
	StartScreen  string    `yaml:"start_screen"`  // "calculator" or "greeting"
	Greeting     *Greeting `yaml:"greeting,omitempty"`
}

// Greeting configures the animated greeting screen.
type Greeting struct {
	Message    string `yaml:"message"`
	Snowflakes int    `yaml:"snowflakes"` // Number of falling flakes
	FrameMS    int    `yaml:"frame_ms"`   // Milliseconds between animation frames
}

// Server configures the remote keypad server.
type Server struct {
	Host      string `yaml:"host"`      // Empty = all interfaces
	Port      int    `yaml:"port"`      // TCP port
	Advertise bool   `yaml:"advertise"` // Register via mDNS
	Instance  string `yaml:"instance"`  // mDNS instance name
}

// Defaults
const (
	DefaultRepeatEquals = "noop"
	DefaultMessage      = "Merry Christmas"
	DefaultSnowflakes   = 40
	DefaultFrameMS      = 100
	DefaultPort         = 7337
	DefaultInstance     = "calcpad"
)

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Preferences: &Preferences{
			RepeatEquals: DefaultRepeatEquals,
			StartScreen:  ScreenCalculator,
			Greeting:     defaultGreeting(),
		},
		Server: defaultServer(),
	}
}

func defaultGreeting() *Greeting {
	return &Greeting{
		Message:    DefaultMessage,
		Snowflakes: DefaultSnowflakes,
		FrameMS:    DefaultFrameMS,
	}
}

func defaultServer() *Server {
	return &Server{
		Port:      DefaultPort,
		Advertise: true,
		Instance:  DefaultInstance,
	}
}

// applyDefaults fills sections and zero fields left out of a loaded file.
func (c *Config) applyDefaults() {
	if c.Preferences == nil {
		c.Preferences = NewConfig().Preferences
	}
	p := c.Preferences
	if p.RepeatEquals == "" {
		p.RepeatEquals = DefaultRepeatEquals
	}
	if p.StartScreen == "" {
		p.StartScreen = ScreenCalculator
	}
	if p.Greeting == nil {
		p.Greeting = defaultGreeting()
	}
	if p.Greeting.Message == "" {
		p.Greeting.Message = DefaultMessage
	}
	if p.Greeting.FrameMS == 0 {
		p.Greeting.FrameMS = DefaultFrameMS
	}

	if c.Server == nil {
		c.Server = defaultServer()
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Instance == "" {
		c.Server.Instance = DefaultInstance
	}
}

// ValidationError describes an invalid config field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s (caused by: %v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("unsupported config version %d (expected %d)", c.Version, CurrentVersion)}
	}

	if p := c.Preferences; p != nil {
		if _, err := calculator.ParseRepeatPolicy(p.RepeatEquals); err != nil {
			return &ValidationError{Field: "preferences.repeat_equals", Message: "must be noop or repeat", Err: err}
		}
		switch strings.ToLower(p.StartScreen) {
		case "", ScreenCalculator, ScreenGreeting:
		default:
			return &ValidationError{Field: "preferences.start_screen", Message: fmt.Sprintf("unknown screen %q", p.StartScreen)}
		}
		if g := p.Greeting; g != nil {
			if g.Snowflakes < 0 || g.Snowflakes > 500 {
				return &ValidationError{Field: "preferences.greeting.snowflakes", Message: "must be between 0 and 500"}
			}
			if g.FrameMS < 0 || (g.FrameMS > 0 && g.FrameMS < 16) {
				return &ValidationError{Field: "preferences.greeting.frame_ms", Message: "must be at least 16"}
			}
		}
	}

	if s := c.Server; s != nil {
		if s.Port < 0 || s.Port > 65535 {
			return &ValidationError{Field: "server.port", Message: fmt.Sprintf("%d is out of range", s.Port)}
		}
	}

	return nil
}

// RepeatPolicy returns the parsed repeat_equals preference.
func (c *Config) RepeatPolicy() calculator.RepeatPolicy {
	if c.Preferences == nil {
		return calculator.RepeatNoop
	}
	p, err := calculator.ParseRepeatPolicy(c.Preferences.RepeatEquals)
	if err != nil {
		return calculator.RepeatNoop
	}
	return p
}
