// Package gate runs the ordered compliance battery for one project.
//
// Checks are independent and never short-circuit: a failure in one still
// lets every later check run, so a single pass always produces the full
// report.
package gate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teleprompter-plus/precheck/internal/manifest"
	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/internal/scan"
	"github.com/teleprompter-plus/precheck/pkg/report"
)

// ToolName identifies this gate in SARIF and JSON output.
const ToolName = "precheck"

// Run executes the full battery against the project at dir.
// The returned error covers startup problems only (absent project directory,
// unusable glob); everything found during checking lands in the report.
func Run(dir string, pack *rules.Compiled) (*report.Report, error) {
	tree, err := scan.Load(dir, pack.Pack.SourceGlob)
	if err != nil {
		return nil, err
	}

	rep := report.New()

	if len(tree.Errors) > 0 {
		rep.Add(readErrorResult(tree.Errors))
	}
	for _, rule := range pack.Patterns {
		rep.Add(patternResult(tree, rule, pack.Pack.SampleLimit))
	}
	rep.Add(casingResult(tree, pack.Pack))
	rep.Add(manifestResult(dir, pack.Pack.ManifestPath))
	rep.Add(artifactResult(dir, pack.Pack.Artifacts))

	return rep, nil
}

// readErrorResult reports files that matched the glob but could not be read.
// Treated as a hard failure: an unreadable file means the scans above it ran
// on an incomplete source set.
func readErrorResult(errs []scan.ReadError) report.CheckResult {
	samples := make([]report.Match, 0, len(errs))
	for _, e := range errs {
		samples = append(samples, report.Match{File: e.Path, Text: e.Err.Error()})
	}
	return report.CheckResult{
		ID:      "io-error",
		Name:    "Source files readable",
		Outcome: report.Failure,
		Message: fmt.Sprintf("%d source file(s) could not be read", len(errs)),
		Samples: samples,
	}
}

func patternResult(tree *scan.Tree, rule rules.CompiledPattern, limit int) report.CheckResult {
	matches := tree.Grep(rule)
	res := report.CheckResult{
		ID:   rule.ID,
		Name: rule.Name,
	}
	if len(matches) == 0 {
		res.Outcome = report.Pass
		res.Message = "no matches"
		return res
	}

	res.Outcome = report.Failure
	if rule.Severity == rules.SeverityWarning {
		res.Outcome = report.Warning
	}
	res.Message = fmt.Sprintf("%d match(es): %s", len(matches), rule.Message)
	res.Samples = capSamples(matches, limit)
	return res
}

func manifestResult(dir, path string) report.CheckResult {
	res := report.CheckResult{
		ID:   "manifest",
		Name: "Manifest fields",
	}

	m, err := manifest.Extract(filepath.Join(dir, path))
	if err != nil {
		res.Outcome = report.Failure
		res.Message = fmt.Sprintf("manifest missing or unreadable: %v", err)
		return res
	}

	if problems := m.Problems(); len(problems) > 0 {
		res.Outcome = report.Failure
		res.Message = strings.Join(problems, "; ")
		return res
	}

	res.Outcome = report.Pass
	res.Message = fmt.Sprintf("version %s, description ok", m.Version)
	return res
}

// artifactResult checks that the expected build outputs exist. Missing
// artifacts are advisory only: a rebuild fixes them without a code change.
func artifactResult(dir string, artifacts []string) report.CheckResult {
	res := report.CheckResult{
		ID:   "artifacts",
		Name: "Build artifacts",
	}

	var missing []string
	for _, a := range artifacts {
		if !fileExists(filepath.Join(dir, a)) {
			missing = append(missing, a)
		}
	}

	if len(missing) == 0 {
		res.Outcome = report.Pass
		res.Message = fmt.Sprintf("%d artifact(s) present", len(artifacts))
		return res
	}

	res.Outcome = report.Warning
	res.Message = fmt.Sprintf("missing %s; run the build before packaging", strings.Join(missing, ", "))
	return res
}

func capSamples(matches []report.Match, limit int) []report.Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
