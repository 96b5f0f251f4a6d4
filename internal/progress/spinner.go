package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/migrate"
	"github.com/conn-castle/upshift/internal/runner"
	"github.com/conn-castle/upshift/internal/transform"
)

var (
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	transformStyle = lipgloss.NewStyle().Bold(true)
	erroredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type startedMsg struct {
	transforms int
	files      int
}

type transformMsg struct {
	id    transform.ID
	files int
}

type fileMsg struct {
	kind runner.Kind
}

type stopMsg struct{}

// spinnerModel is the bubbletea model behind Spinner.
type spinnerModel struct {
	spinner    spinner.Model
	transforms int
	files      int
	current    transform.ID
	index      int
	done       int
	errored    int
	quitting   bool
}

func newSpinnerModel() spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return spinnerModel{spinner: s}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		m.transforms = msg.transforms
		m.files = msg.files
	case transformMsg:
		m.current = msg.id
		m.files = msg.files
		m.index++
		m.done = 0
	case fileMsg:
		m.done++
		if msg.kind == runner.KindErrored {
			m.errored++
		}
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	name := messages.ProgressSpinnerPreparing
	if m.current != "" {
		name = string(m.current)
	}
	line := fmt.Sprintf(messages.ProgressSpinnerFmt, m.spinner.View(), transformStyle.Render(name), m.index, m.transforms, m.done, m.files)
	if m.errored > 0 {
		line += erroredStyle.Render(fmt.Sprintf(messages.ProgressFileErroredSuffixFmt, m.errored))
	}
	return line
}

// Spinner renders a single animated status line while a run previews files.
// Stop must be called before anything else writes to the terminal.
type Spinner struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewSpinner starts a spinner writing to out.
func NewSpinner(out io.Writer) *Spinner {
	s := &Spinner{done: make(chan struct{})}
	s.program = tea.NewProgram(newSpinnerModel(),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		defer close(s.done)
		_, _ = s.program.Run()
	}()
	return s
}

// Started records the run size.
func (s *Spinner) Started(transformCount int, fileCount int) {
	s.send(startedMsg{transforms: transformCount, files: fileCount})
}

// TransformStarted switches the status line to id.
func (s *Spinner) TransformStarted(id transform.ID, fileCount int) {
	s.send(transformMsg{id: id, files: fileCount})
}

// FileCompleted advances the file counter.
func (s *Spinner) FileCompleted(outcome runner.FileOutcome) {
	s.send(fileMsg{kind: outcome.Kind})
}

// Finished stops the spinner.
func (s *Spinner) Finished(*migrate.Report) {
	s.Stop()
}

// Stop clears the status line and waits for the renderer to exit. It is safe
// to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.program.Send(stopMsg{})
		<-s.done
	})
}

func (s *Spinner) send(msg tea.Msg) {
	select {
	case <-s.done:
	default:
		s.program.Send(msg)
	}
}
