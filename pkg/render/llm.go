package render

import (
	"fmt"
	"strings"

	"github.com/teleprompter-plus/precheck/pkg/report"
)

// LLM renders a report as terse plain text for piped or CI consumption.
// Zero ANSI codes, deterministic line order, one finding per line.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats the report for machine-adjacent readers.
func (l *LLM) Render(r *report.Report) string {
	var sb strings.Builder

	for _, res := range r.Results {
		sb.WriteString(fmt.Sprintf("%s %s %s\n", statusTag(res.Outcome), res.ID, res.Message))
		for _, m := range res.Samples {
			if m.File != "" && m.Line > 0 {
				sb.WriteString(fmt.Sprintf("  %s:%d: %s\n", m.File, m.Line, m.Text))
			} else if m.File != "" {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", m.File, m.Text))
			} else {
				sb.WriteString(fmt.Sprintf("  %s\n", m.Text))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("STATUS: %s errors=%d warnings=%d\n", r.Status(), r.ErrorCount, r.WarningCount))
	sb.WriteString(r.Instruction())
	sb.WriteString("\n")
	return sb.String()
}

func statusTag(o report.Outcome) string {
	switch o {
	case report.Failure:
		return "FAIL"
	case report.Warning:
		return "WARN"
	default:
		return "PASS"
	}
}
