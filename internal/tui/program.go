package tui

import (
	"context"

	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Run starts the interactive shop browser and blocks until the user
// quits or the context is canceled. The given options are applied to the
// underlying controller.
func Run(ctx context.Context, client shop.Client, city string, funcs ...view.ControllerOptionFunc) error {
	changes, onChange := view.ChangeEventChannel()

	funcs = append(funcs, view.WithChangeCallback(onChange))

	controller := view.NewController(client, funcs...)

	model := NewModel(ctx, controller, changes, city)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.WithStack(err)
	}

	return nil
}
