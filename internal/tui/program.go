package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/config"
	"github.com/calcpad/calcpad/internal/logging"
)

// Options configures Run
type Options struct {
	Config     *config.Config
	ConfigPath string // Watched for changes when Watch is set
	Watch      bool
}

// Run starts the full-screen calculator and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewAppModel(opts.Config)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Watch && opts.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, opts.ConfigPath, func(cfg *config.Config) {
				p.Send(ConfigReloadedMsg{Config: cfg})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run calculator: %w", err)
	}
	return nil
}
