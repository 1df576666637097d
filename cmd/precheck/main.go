// precheck gates plugin marketplace submissions.
//
// Usage:
//
//	precheck                      # check the current directory
//	precheck -C path/to/plugin    # check another project
//	precheck -format sarif > out.sarif
//	precheck -watch               # re-run on every save
//
// It scans the plugin source for forbidden patterns, validates the manifest,
// and confirms build artifacts exist. Any hard failure exits 1; warnings are
// advisory and exit 0.
//
// Output modes (auto-detected):
//
//	terminal  — styled Unicode output (default when TTY)
//	llm       — terse plain text for piped/CI consumption
//	json      — structured JSON for automation
//	sarif     — SARIF 2.1.0 for code-scanning UIs
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"golang.org/x/term"

	"github.com/teleprompter-plus/precheck/internal/gate"
	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/internal/version"
	"github.com/teleprompter-plus/precheck/internal/watch"
	"github.com/teleprompter-plus/precheck/pkg/render"
	"github.com/teleprompter-plus/precheck/pkg/sarif"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("precheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dirFlag := fs.String("C", ".", "Project directory to check")
	configFlag := fs.String("config", "", "Rule pack file (default: <dir>/"+rules.DefaultConfigName+" if present)")
	formatFlag := fs.String("format", "auto", "Output format: auto, terminal, llm, json, sarif")
	themeFlag := fs.String("theme", "default", "Theme: default, mono")
	watchFlag := fs.Bool("watch", false, "Re-run checks when watched files change")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "precheck %s (%s, %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	}

	pack, err := loadPack(*dirFlag, *configFlag, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "precheck: %v\n", err)
		return 2
	}
	compiled, err := pack.Compile()
	if err != nil {
		fmt.Fprintf(stderr, "precheck: %v\n", err)
		return 2
	}

	theme := resolveTheme(*themeFlag)

	mode := resolveFormat(*formatFlag, stdout)
	switch mode {
	case "terminal", "llm", "json", "sarif":
	default:
		fmt.Fprintf(stderr, "precheck: unknown format %q (expected auto, terminal, llm, json, sarif)\n", *formatFlag)
		return 2
	}

	if *watchFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		code, err := watch.Run(ctx, *dirFlag, compiled, theme)
		if err != nil {
			fmt.Fprintf(stderr, "precheck: %v\n", err)
		}
		return code
	}

	rep, err := gate.Run(*dirFlag, compiled)
	if err != nil {
		fmt.Fprintf(stderr, "precheck: %v\n", err)
		return 2
	}

	switch mode {
	case "sarif":
		doc := sarif.FromReport(rep, gate.ToolName, version.Version)
		if _, err := doc.WriteTo(stdout); err != nil {
			fmt.Fprintf(stderr, "precheck: writing SARIF: %v\n", err)
			return 2
		}
	case "json":
		fmt.Fprint(stdout, render.NewJSON(gate.ToolName, version.Version).Render(rep))
	case "llm":
		fmt.Fprint(stdout, render.NewLLM().Render(rep))
	default:
		fmt.Fprint(stdout, render.NewTerminal(theme, termWidth(stdout)).Render(rep))
	}

	return rep.ExitCode()
}

// loadPack resolves the rule pack. An explicit -config path must load. An
// auto-discovered precheck.yaml that fails to load is reported on stderr and
// the defaults are used instead.
func loadPack(dir, explicit string, stderr io.Writer) (*rules.Pack, error) {
	if explicit != "" {
		return rules.Load(explicit)
	}
	candidate := filepath.Join(dir, rules.DefaultConfigName)
	if _, err := os.Stat(candidate); err != nil {
		return rules.Defaults(), nil
	}
	pack, err := rules.Load(candidate)
	if err != nil {
		fmt.Fprintf(stderr, "precheck: warning: %v; using default rules\n", err)
		return rules.Defaults(), nil
	}
	return pack, nil
}

func resolveTheme(name string) render.Theme {
	// Honor NO_COLOR
	if os.Getenv("NO_COLOR") != "" {
		return render.MonoTheme()
	}
	return render.ThemeByName(name)
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
