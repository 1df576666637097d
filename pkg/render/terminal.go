package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/teleprompter-plus/precheck/pkg/report"
)

// Terminal renders a report as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the full report: one line per check, sample lines under
// the checks that produced them, then the summary banner.
func (t *Terminal) Render(r *report.Report) string {
	var sb strings.Builder

	for _, res := range r.Results {
		t.renderResult(&sb, res)
	}

	sb.WriteString("\n")
	t.renderBanner(&sb, r)
	return sb.String()
}

func (t *Terminal) renderResult(sb *strings.Builder, res report.CheckResult) {
	icon, style := t.iconStyle(res.Outcome)
	sb.WriteString(style.Render(fmt.Sprintf("%s %s: %s", icon, res.Name, res.Message)))
	sb.WriteString("\n")

	for _, m := range res.Samples {
		sb.WriteString("    ")
		sb.WriteString(t.theme.Muted.Render(t.sampleLine(m)))
		sb.WriteString("\n")
	}
}

func (t *Terminal) sampleLine(m report.Match) string {
	var line string
	switch {
	case m.File != "" && m.Line > 0:
		line = fmt.Sprintf("%s:%d: %s", m.File, m.Line, m.Text)
	case m.File != "":
		line = fmt.Sprintf("%s: %s", m.File, m.Text)
	default:
		line = m.Text
	}
	return runewidth.Truncate(line, t.width-4, "…")
}

func (t *Terminal) renderBanner(sb *strings.Builder, r *report.Report) {
	style := t.theme.Success
	switch r.Status() {
	case report.StatusFail:
		style = t.theme.Error
	case report.StatusWarn:
		style = t.theme.Warning
	}

	banner := fmt.Sprintf("%s — %d error(s), %d warning(s)", r.Banner(), r.ErrorCount, r.WarningCount)
	sb.WriteString(t.theme.Bold.Inherit(style).Render(banner))
	sb.WriteString("\n")
	sb.WriteString(style.Render(r.Instruction()))
	sb.WriteString("\n")
}

func (t *Terminal) iconStyle(o report.Outcome) (string, lipgloss.Style) {
	switch o {
	case report.Failure:
		return t.theme.Icons.Fail, t.theme.Error
	case report.Warning:
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Pass, t.theme.Success
	}
}
