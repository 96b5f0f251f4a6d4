package migrate

import (
	"context"
	"errors"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/transform"
)

// Summary describes the pending writes a Confirmer is asked to approve.
type Summary struct {
	Transforms []transform.ID
	Files      []FileResult
}

// Confirmer gates the applying phase.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string, summary Summary) (bool, error)
}

// ConfirmFunc adapts a function into a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string, summary Summary) (bool, error)

// Confirm calls f. Returns an error if f is nil.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string, summary Summary) (bool, error) {
	if f == nil {
		return false, errors.New(messages.MigrateConfirmRequired)
	}
	return f(ctx, prompt, summary)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string, Summary) (bool, error) {
	return true, nil
})

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string, Summary) (bool, error) {
	return false, nil
})
