package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/tabresumer/pkg/library"
	"github.com/entrhq/tabresumer/pkg/logging"
)

// Run starts the interactive program and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, lib *library.Library, opener Opener, logger *logging.Logger) error {
	m := newModel(ctx, lib, opener, logger)

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return exitError(ctx, err)
}

// exitError maps the program's exit error. A program killed because ctx
// was cancelled, or interrupted by SIGINT, is a normal shutdown.
func exitError(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return fmt.Errorf("failed to run TUI program: %w", err)
}
