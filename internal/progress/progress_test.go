package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/upshift/internal/migrate"
	"github.com/conn-castle/upshift/internal/runner"
)

func disableColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestLine_QuietPrintsOnlyErrors(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	l := NewLine(&buf, false)

	l.Started(2, 3)
	l.TransformStarted("scoped-packages", 3)
	l.FileCompleted(runner.FileOutcome{RelPath: "src/a.js", Kind: runner.KindChanged})
	l.FileCompleted(runner.FileOutcome{RelPath: "src/b.js", Kind: runner.KindUnchanged})
	l.FileCompleted(runner.FileOutcome{RelPath: "src/c.js", Kind: runner.KindErrored, Message: "scoped-packages: line 2: unterminated string literal"})
	l.Finished(&migrate.Report{})

	assert.Equal(t, "Running 2 codemod(s) over 3 file(s)\n"+
		"==> scoped-packages (3 file(s))\n"+
		"  errored src/c.js: scoped-packages: line 2: unterminated string literal\n", buf.String())
}

func TestLine_VerbosePrintsEveryFile(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	l := NewLine(&buf, true)

	l.FileCompleted(runner.FileOutcome{RelPath: "src/a.js", Kind: runner.KindChanged})
	l.FileCompleted(runner.FileOutcome{RelPath: "src/b.js", Kind: runner.KindSkipped, Reason: runner.ReasonPriorTransformFailed})

	assert.Equal(t, "  changed src/a.js\n  skipped src/b.js: prior_transform_failed\n", buf.String())
}

func TestNop(t *testing.T) {
	r := Nop()
	r.Started(1, 1)
	r.TransformStarted("x", 1)
	r.FileCompleted(runner.FileOutcome{})
	r.Finished(nil)
}

func TestSpinnerModel_TracksProgress(t *testing.T) {
	m := newSpinnerModel()
	assert.Contains(t, m.View(), "preparing")
	assert.Contains(t, m.View(), "(0/0)")

	next, _ := m.Update(startedMsg{transforms: 2, files: 4})
	next, _ = next.Update(transformMsg{id: "lifecycle-hooks", files: 4})
	next, _ = next.Update(fileMsg{kind: runner.KindChanged})
	next, _ = next.Update(fileMsg{kind: runner.KindErrored})
	view := next.View()
	assert.Contains(t, view, "lifecycle-hooks")
	assert.Contains(t, view, "(1/2)")
	assert.Contains(t, view, "2/4 files")
	assert.Contains(t, view, "1 errored")

	next, _ = next.Update(transformMsg{id: "store-subscribe-once", files: 4})
	assert.Contains(t, next.View(), "(2/2)  0/4 files")

	next, cmd := next.Update(stopMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}

func TestSpinnerModel_Ticks(t *testing.T) {
	m := newSpinnerModel()
	_, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd)
	_, cmd = m.Update(spinner.TickMsg{})
	assert.NotNil(t, cmd)
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.Started(1, 2)
	s.TransformStarted("scoped-packages", 2)
	s.FileCompleted(runner.FileOutcome{Kind: runner.KindChanged})

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		s.Finished(nil)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("spinner did not stop")
	}
	// Events after Stop are dropped.
	s.FileCompleted(runner.FileOutcome{Kind: runner.KindChanged})
	assert.False(t, strings.Contains(buf.String(), "panic"))
}
