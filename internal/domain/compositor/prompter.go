package compositor

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
)

// Prompter shows modal dialogs on behalf of a window
type Prompter interface {
	Prompt(ctx context.Context, w *app.Window, message, defaultValue string) (string, error)
	Alert(ctx context.Context, w *app.Window, message string) error
}

// DefaultPrompter answers every prompt with its default value
type DefaultPrompter struct{}

// Prompt returns defaultValue unless ctx is done
func (DefaultPrompter) Prompt(ctx context.Context, _ *app.Window, _, defaultValue string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return defaultValue, nil
}

// Alert returns immediately unless ctx is done
func (DefaultPrompter) Alert(ctx context.Context, _ *app.Window, _ string) error {
	return ctx.Err()
}
