package transform

import (
	"errors"
	"fmt"

	"github.com/conn-castle/upshift/internal/messages"
)

// Engine rewrites source text according to a definition. Implementations must
// be pure: the result depends only on src and def.
type Engine interface {
	Rewrite(src []byte, def Definition) ([]byte, error)
}

// EngineFunc adapts a function into an Engine.
type EngineFunc func(src []byte, def Definition) ([]byte, error)

// Rewrite calls f.
func (f EngineFunc) Rewrite(src []byte, def Definition) ([]byte, error) {
	return f(src, def)
}

// ErrTransformFailure is wrapped by every Failure.
var ErrTransformFailure = errors.New("transform failure")

// Failure reports that the engine could not parse or rewrite a source file.
type Failure struct {
	Transform ID

	// Line is 1-based; zero when the failure is not tied to a position.
	Line    int
	Message string
}

func (e *Failure) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf(messages.TransformFailureFmt, e.Transform, e.Line, e.Message)
	}
	return fmt.Sprintf(messages.TransformFailureNoLineFmt, e.Transform, e.Message)
}

// Unwrap returns ErrTransformFailure.
func (e *Failure) Unwrap() error {
	return ErrTransformFailure
}
