package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func cleanProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "src/main.ts", "export default class Plugin {}\n")
	writeFile(t, dir, "manifest.json", `{"version": "1.2.0", "description": "Does a thing."}`)
	writeFile(t, dir, "main.js", "/* built */\n")
	writeFile(t, dir, "styles.css", "/* built */\n")
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_When_CleanProject(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "-C", cleanProject(t), "-format", "llm")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "STATUS: pass errors=0 warnings=0")
	assert.Contains(t, stdout, "Ready to create release.")
	assert.Empty(t, stderr)
}

func TestRun_When_FailurePresent(t *testing.T) {
	t.Parallel()

	dir := cleanProject(t)
	writeFile(t, dir, "src/bad.ts", "console.log(\"x\");\n")

	code, stdout, _ := runCLI(t, "-C", dir, "-format", "llm")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "FAIL no-console-log")
	assert.Contains(t, stdout, "STATUS: fail")
}

func TestRun_When_WarningsOnly(t *testing.T) {
	t.Parallel()

	dir := cleanProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "main.js")))

	code, stdout, _ := runCLI(t, "-C", dir, "-format", "llm")

	assert.Equal(t, 0, code, "warnings alone never fail the gate")
	assert.Contains(t, stdout, "STATUS: warn errors=0 warnings=1")
}

func TestRun_When_ProjectDirAbsent(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "-C", filepath.Join(t.TempDir(), "absent"))

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout, "startup errors produce no report")
	assert.Contains(t, stderr, "precheck:")
}

func TestRun_When_JSONFormat(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "-C", cleanProject(t), "-format", "json")

	assert.Equal(t, 0, code)
	var parsed struct {
		Tool   string `json:"tool"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
	assert.Equal(t, "precheck", parsed.Tool)
	assert.Equal(t, "pass", parsed.Status)
}

func TestRun_When_SARIFFormat(t *testing.T) {
	t.Parallel()

	dir := cleanProject(t)
	writeFile(t, dir, "src/bad.ts", "let y: any;\n")

	code, stdout, _ := runCLI(t, "-C", dir, "-format", "sarif")

	assert.Equal(t, 1, code)
	var parsed struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
	assert.Equal(t, "2.1.0", parsed.Version)
	require.Len(t, parsed.Runs, 1)
	require.NotEmpty(t, parsed.Runs[0].Results)
	assert.Equal(t, "no-any", parsed.Runs[0].Results[0].RuleID)
}

func TestRun_When_UnknownFormat(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "-C", cleanProject(t), "-format", "xml")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown format")
}

func TestRun_When_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "-C", cleanProject(t), "-config", "no-such.yaml")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "precheck:")
}

func TestRun_When_ConfigAutoDiscovered(t *testing.T) {
	t.Parallel()

	dir := cleanProject(t)
	// Point the glob somewhere else; the console.log in src/ goes unseen.
	writeFile(t, dir, "src/bad.ts", "console.log(\"x\");\n")
	writeFile(t, dir, "precheck.yaml", "source_glob: \"lib/*.ts\"\n")

	code, stdout, _ := runCLI(t, "-C", dir, "-format", "llm")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "STATUS: pass")
}

func TestRun_When_AutoDiscoveredConfigMalformed(t *testing.T) {
	t.Parallel()

	dir := cleanProject(t)
	writeFile(t, dir, "precheck.yaml", "source_glob: [not: valid\n")

	code, stdout, stderr := runCLI(t, "-C", dir, "-format", "llm")

	assert.Equal(t, 0, code, "a broken local config degrades to defaults")
	assert.Contains(t, stdout, "STATUS: pass")
	assert.Contains(t, stderr, "warning")
	assert.Contains(t, stderr, "using default rules")
}

func TestRun_When_VersionFlag(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "-version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "precheck")
}

func TestRun_When_BadFlag(t *testing.T) {
	t.Parallel()

	code, _, _ := runCLI(t, "-definitely-not-a-flag")
	assert.Equal(t, 2, code)
}
