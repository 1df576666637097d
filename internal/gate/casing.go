package gate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/internal/scan"
	"github.com/teleprompter-plus/precheck/pkg/report"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// quotedRe pulls string literals out of a UI-call line. Template
	// literals with interpolation are skipped on purpose; the heuristic
	// only judges fully static labels.
	quotedRe = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

	// titlePairRe matches two or more consecutive capitalized words,
	// the usual signature of Title Case UI text.
	titlePairRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)
)

var sentenceLower = cases.Lower(language.English)

// casingResult flags UI label text that looks Title Cased. This is a
// heuristic, so matches are warnings for human review, never failures.
func casingResult(tree *scan.Tree, pack *rules.Pack) report.CheckResult {
	res := report.CheckResult{
		ID:   "ui-casing",
		Name: "UI text sentence case",
	}

	var samples []report.Match
	for _, f := range tree.Files {
		for i, line := range f.Lines {
			if !isUICall(line, pack.UICalls) {
				continue
			}
			label, ok := titleCasedLabel(line, pack.ProperNouns)
			if !ok {
				continue
			}
			samples = append(samples, report.Match{
				File: f.Path,
				Line: i + 1,
				Text: fmt.Sprintf("%q looks Title Cased (try %q)", label, sentenceCase(label, pack.ProperNouns)),
			})
		}
	}

	if len(samples) == 0 {
		res.Outcome = report.Pass
		res.Message = "no matches"
		return res
	}

	res.Outcome = report.Warning
	res.Message = fmt.Sprintf("%d UI label(s) look Title Cased; prefer sentence case", len(samples))
	res.Samples = capSamples(samples, pack.SampleLimit)
	return res
}

func isUICall(line string, calls []string) bool {
	for _, call := range calls {
		if strings.Contains(line, call) {
			return true
		}
	}
	return false
}

// titleCasedLabel returns the first quoted label on the line that still
// contains a capitalized-word pair after masking out known proper nouns.
func titleCasedLabel(line string, properNouns []string) (string, bool) {
	for _, groups := range quotedRe.FindAllStringSubmatch(line, -1) {
		label := groups[1]
		if label == "" {
			label = groups[2]
		}
		if titlePairRe.MatchString(maskProperNouns(label, properNouns)) {
			return label, true
		}
	}
	return "", false
}

// maskProperNouns blanks out allow-listed terms so "Connect to Stream Deck"
// is not flagged for the "Stream Deck" pair. Spaces survive the masking so
// word positions stay aligned with the original label.
func maskProperNouns(label string, properNouns []string) string {
	for _, noun := range properNouns {
		label = strings.ReplaceAll(label, noun, maskTerm(noun))
	}
	return label
}

func maskTerm(noun string) string {
	out := []rune(noun)
	for i, r := range out {
		if r != ' ' {
			out[i] = 'x'
		}
	}
	return string(out)
}

// sentenceCase lowers every capitalized word after the first, leaving
// proper nouns alone. Suggestion only; the warning still needs human eyes.
func sentenceCase(label string, properNouns []string) string {
	masked := maskProperNouns(label, properNouns)
	words := strings.Fields(label)
	maskedWords := strings.Fields(masked)
	for i := 1; i < len(words) && i < len(maskedWords); i++ {
		if titleWordRe.MatchString(maskedWords[i]) {
			words[i] = sentenceLower.String(words[i])
		}
	}
	return strings.Join(words, " ")
}

var titleWordRe = regexp.MustCompile(`^[A-Z][a-z]+$`)
