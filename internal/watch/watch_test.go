package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleprompter-plus/precheck/internal/rules"
	"github.com/teleprompter-plus/precheck/pkg/report"
)

func TestFingerprint_When_FileTouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	path := filepath.Join(dir, "src", "main.ts")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))

	pack := rules.Defaults()
	before := fingerprint(dir, pack)

	stamp := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	assert.NotEqual(t, before, fingerprint(dir, pack))
}

func TestFingerprint_When_ManifestAppears(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pack := rules.Defaults()
	before := fingerprint(dir, pack)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))

	assert.NotEqual(t, before, fingerprint(dir, pack))
}

func TestModel_ExitCode(t *testing.T) {
	t.Parallel()

	failing := report.New()
	failing.Add(report.CheckResult{ID: "no-any", Outcome: report.Failure})

	passing := report.New()

	assert.Equal(t, 1, model{rep: failing}.exitCode())
	assert.Equal(t, 0, model{rep: passing}.exitCode())
	assert.Equal(t, 1, model{}.exitCode(), "quit before the first run completes")
	assert.Equal(t, 2, model{err: os.ErrNotExist}.exitCode())
}
