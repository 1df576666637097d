// Package render provides output renderers for gate reports.
package render

import "github.com/teleprompter-plus/precheck/pkg/report"

// Renderer converts a completed report to formatted output.
type Renderer interface {
	Render(r *report.Report) string
}
