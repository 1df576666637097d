// Package watch re-runs the gate whenever watched files change and keeps
// the latest report on screen.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teleprompter-plus/precheck/internal/gate"
	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/pkg/render"
	"github.com/teleprompter-plus/precheck/pkg/report"
)

// pollInterval is how often watched file mtimes are compared.
const pollInterval = 500 * time.Millisecond

// Run launches the watch loop and blocks until the user quits.
// The returned exit code reflects the last completed report.
func Run(ctx context.Context, dir string, pack *rules.Compiled, theme render.Theme) (int, error) {
	program := tea.NewProgram(newModel(dir, pack, theme), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return 1, err
	}
	return final.(model).exitCode(), nil
}

type tickMsg struct{}

type reportMsg struct {
	rep *report.Report
	err error
}

type model struct {
	dir   string
	pack  *rules.Compiled
	theme render.Theme

	sp          spinner.Model
	width       int
	running     bool
	fingerprint string
	rep         *report.Report
	err         error
}

func newModel(dir string, pack *rules.Compiled, theme render.Theme) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Warning
	// The first battery run starts from Init, so the model begins in flight.
	return model{dir: dir, pack: pack, theme: theme, sp: sp, width: 80, running: true}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.runGate(), m.sp.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) runGate() tea.Cmd {
	dir, pack := m.dir, m.pack
	return func() tea.Msg {
		rep, err := gate.Run(dir, pack)
		return reportMsg{rep: rep, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.running {
				m.running = true
				return m, m.runGate()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case reportMsg:
		m.running = false
		m.rep = msg.rep
		m.err = msg.err
		m.fingerprint = fingerprint(m.dir, m.pack.Pack)

	case tickMsg:
		if !m.running && fingerprint(m.dir, m.pack.Pack) != m.fingerprint {
			m.running = true
			return m, tea.Batch(m.runGate(), tick())
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(m.theme.Bold.Render(fmt.Sprintf("precheck watch — %s", m.dir)))
	sb.WriteString(m.theme.Muted.Render("  (r to re-run, q to quit)"))
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(m.theme.Error.Render(fmt.Sprintf("error: %v", m.err)))
		sb.WriteString("\n")
	case m.running && m.rep == nil:
		sb.WriteString(m.sp.View())
		sb.WriteString(" checking…\n")
	case m.rep != nil:
		sb.WriteString(render.NewTerminal(m.theme, m.width).Render(m.rep))
		if m.running {
			sb.WriteString(m.sp.View())
			sb.WriteString(" re-checking…\n")
		}
	}
	return sb.String()
}

func (m model) exitCode() int {
	if m.err != nil {
		return 2
	}
	if m.rep == nil {
		return 1
	}
	return m.rep.ExitCode()
}

// fingerprint summarizes the mtimes and sizes of every watched file so the
// tick handler can cheaply detect a change worth a re-run.
func fingerprint(dir string, pack *rules.Pack) string {
	var sb strings.Builder

	paths, _ := filepath.Glob(filepath.Join(dir, pack.SourceGlob))
	paths = append(paths, filepath.Join(dir, pack.ManifestPath))
	for _, a := range pack.Artifacts {
		paths = append(paths, filepath.Join(dir, a))
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(&sb, "%s:gone;", p)
			continue
		}
		fmt.Fprintf(&sb, "%s:%d:%d;", p, info.ModTime().UnixNano(), info.Size())
	}
	return sb.String()
}
