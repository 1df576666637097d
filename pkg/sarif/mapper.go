package sarif

import "github.com/teleprompter-plus/precheck/pkg/report"

// FromReport maps a gate report onto a SARIF document. Passing checks emit
// nothing; failures map to error-level results and warnings to warning-level
// results, one per sample (or one location-free result when a check carried
// no samples).
func FromReport(r *report.Report, toolName, toolVersion string) *Document {
	b := NewBuilder(toolName, toolVersion)

	for _, res := range r.Results {
		level := levelFor(res.Outcome)
		if level == "" {
			continue
		}

		if len(res.Samples) == 0 {
			b.AddResult(res.ID, level, res.Message, "", 0)
			continue
		}
		for _, m := range res.Samples {
			b.AddResult(res.ID, level, res.Message, m.File, m.Line)
		}
	}

	return b.Document()
}

func levelFor(o report.Outcome) string {
	switch o {
	case report.Failure:
		return "error"
	case report.Warning:
		return "warning"
	default:
		return ""
	}
}
