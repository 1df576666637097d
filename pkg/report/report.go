// Package report defines the outcome model for the submission gate.
//
// A Report is an ordered sequence of CheckResults plus two running counters.
// It is built once per run, mutated only while the battery executes, and
// consumed exactly once to decide the banner and the process exit code.
package report

import "encoding/json"

// Outcome classifies a single check result.
type Outcome int

const (
	// Pass means the check found nothing to report.
	Pass Outcome = iota
	// Warning is advisory only and never blocks a release.
	Warning
	// Failure blocks the release and forces a nonzero exit.
	Failure
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the outcome as its string name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Match is one sample line that triggered a check.
type Match struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// CheckResult is the outcome of one compliance check.
type CheckResult struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	Samples []Match `json:"samples,omitempty"`
}

// Status values for a completed report.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Report accumulates check results in battery order.
type Report struct {
	Results      []CheckResult `json:"results"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// Add appends a result and bumps the matching counter.
func (r *Report) Add(res CheckResult) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case Warning:
		r.WarningCount++
	case Failure:
		r.ErrorCount++
	}
}

// Status returns the tri-state status of the completed report.
// Any failure wins over any number of warnings.
func (r *Report) Status() string {
	switch {
	case r.ErrorCount > 0:
		return StatusFail
	case r.WarningCount > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}

// ExitCode maps the report status to a process exit code.
// Warnings are advisory: only failures produce a nonzero exit.
func (r *Report) ExitCode() int {
	if r.ErrorCount > 0 {
		return 1
	}
	return 0
}

// Banner returns the summary banner text for the completed report.
func (r *Report) Banner() string {
	switch r.Status() {
	case StatusFail:
		return "FAILED"
	case StatusWarn:
		return "PASSED WITH WARNINGS"
	default:
		return "PASSED"
	}
}

// Instruction returns the closing instruction printed under the banner.
func (r *Report) Instruction() string {
	switch r.Status() {
	case StatusFail:
		return "Fix all errors before submitting."
	case StatusWarn:
		return "Review warnings before release."
	default:
		return "Ready to create release."
	}
}
