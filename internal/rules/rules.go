// Package rules holds the editable rule pack for the submission gate.
//
// Every pattern, allow-list, and path the checks consult lives here as named
// configuration data. Hardcoded defaults reproduce the stock checklist; a
// precheck.yaml in the project directory can override any field.
package rules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Severity levels for pattern rules.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Pattern is one forbidden-pattern rule applied line by line.
type Pattern struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`

	// CommentPrefixes skips lines whose trimmed text starts with any prefix.
	CommentPrefixes []string `yaml:"comment_prefixes,omitempty"`

	// AllowSubstrings skips lines containing any of these identifiers.
	AllowSubstrings []string `yaml:"allow_substrings,omitempty"`
}

// Pack is the full rule configuration for one project.
type Pack struct {
	// SourceGlob selects the files to scan, one directory level.
	SourceGlob string `yaml:"source_glob"`

	// ManifestPath is the plugin metadata descriptor, relative to the
	// project directory.
	ManifestPath string `yaml:"manifest_path"`

	// Artifacts are build outputs whose absence is advisory only.
	Artifacts []string `yaml:"artifacts"`

	Patterns []Pattern `yaml:"patterns"`

	// UICalls are the call markers whose string arguments the casing
	// heuristic inspects.
	UICalls []string `yaml:"ui_calls"`

	// ProperNouns are Title Case terms the casing heuristic must not flag.
	ProperNouns []string `yaml:"proper_nouns"`

	// SampleLimit caps the matching lines echoed per check. 0 = unlimited.
	SampleLimit int `yaml:"sample_limit"`
}

// DefaultConfigName is the rule pack file looked up in the project directory.
const DefaultConfigName = "precheck.yaml"

// Defaults returns the stock rule pack for an Obsidian-style plugin.
func Defaults() *Pack {
	return &Pack{
		SourceGlob:   "src/*.ts",
		ManifestPath: "manifest.json",
		Artifacts:    []string{"main.js", "styles.css"},
		Patterns: []Pattern{
			{
				ID:       "no-any",
				Name:     "Forbidden 'any' types",
				Pattern:  `:\s*any\b|\bas\s+any\b`,
				Severity: SeverityError,
				Message:  "untyped 'any' is not allowed in submitted source",
			},
			{
				ID:       "no-console-log",
				Name:     "Forbidden console.log calls",
				Pattern:  `\bconsole\.log\(`,
				Severity: SeverityError,
				Message:  "use console.debug or console.error instead of console.log",
			},
			{
				ID:       "no-node-timeout",
				Name:     "Forbidden NodeJS.Timeout type",
				Pattern:  `\bNodeJS\.Timeout\b`,
				Severity: SeverityError,
				Message:  "NodeJS.Timeout is not portable to browser contexts; use number",
			},
			{
				ID:       "no-native-dialogs",
				Name:     "Forbidden native dialogs",
				Pattern:  `(^|[^\w])(confirm|alert)\(`,
				Severity: SeverityError,
				Message:  "blocking browser dialogs are not allowed; use a Modal",
				CommentPrefixes: []string{
					"//",
					"*",
					"/*",
				},
				AllowSubstrings: []string{
					"onConfirm(",
				},
			},
		},
		UICalls: []string{
			"setName(",
			"setDesc(",
			"setText(",
			"setButtonText(",
			"setTitle(",
			"setPlaceholder(",
			"setTooltip(",
		},
		ProperNouns: []string{
			"Teleprompter Plus",
			"Stream Deck",
			"OBS Studio",
			"Web Speech",
			"Obsidian Sync",
		},
		SampleLimit: 5,
	}
}

// Load reads a YAML rule pack and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Pack, error) {
	pack := Defaults()
	if path == "" {
		return pack, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack %s: %w", path, err)
	}

	var overlay Pack
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", path, err)
	}

	if overlay.SourceGlob != "" {
		pack.SourceGlob = overlay.SourceGlob
	}
	if overlay.ManifestPath != "" {
		pack.ManifestPath = overlay.ManifestPath
	}
	if overlay.Artifacts != nil {
		pack.Artifacts = overlay.Artifacts
	}
	if overlay.Patterns != nil {
		pack.Patterns = overlay.Patterns
	}
	if overlay.UICalls != nil {
		pack.UICalls = overlay.UICalls
	}
	if overlay.ProperNouns != nil {
		pack.ProperNouns = overlay.ProperNouns
	}
	if overlay.SampleLimit > 0 {
		pack.SampleLimit = overlay.SampleLimit
	}
	return pack, nil
}

// CompiledPattern pairs a rule with its compiled expression.
type CompiledPattern struct {
	Pattern
	Re *regexp.Regexp
}

// Compiled is a rule pack with every expression compiled and validated.
type Compiled struct {
	Pack     *Pack
	Patterns []CompiledPattern
}

// Compile validates and compiles every pattern in the pack.
func (p *Pack) Compile() (*Compiled, error) {
	c := &Compiled{Pack: p}
	for _, rule := range p.Patterns {
		if rule.ID == "" {
			return nil, fmt.Errorf("pattern rule missing id")
		}
		if rule.Severity != SeverityError && rule.Severity != SeverityWarning {
			return nil, fmt.Errorf("pattern %s: unknown severity %q", rule.ID, rule.Severity)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", rule.ID, err)
		}
		c.Patterns = append(c.Patterns, CompiledPattern{Pattern: rule, Re: re})
	}
	return c, nil
}
