package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Compile(t *testing.T) {
	t.Parallel()

	compiled, err := Defaults().Compile()
	require.NoError(t, err)
	require.Len(t, compiled.Patterns, 4)

	for _, rule := range compiled.Patterns {
		assert.NotEmpty(t, rule.ID)
		assert.NotNil(t, rule.Re)
	}
}

func TestLoad_When_EmptyPath(t *testing.T) {
	t.Parallel()

	pack, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), pack)
}

func TestLoad_When_OverlayFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "precheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_glob: "lib/*.ts"
proper_nouns:
  - "My Brand"
sample_limit: 2
`), 0o644))

	pack, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lib/*.ts", pack.SourceGlob)
	assert.Equal(t, []string{"My Brand"}, pack.ProperNouns)
	assert.Equal(t, 2, pack.SampleLimit)
	// Untouched fields keep their defaults.
	assert.Equal(t, "manifest.json", pack.ManifestPath)
	assert.Len(t, pack.Patterns, 4)
}

func TestLoad_When_FileMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_When_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "precheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCompile_When_InvalidRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule Pattern
	}{
		{
			name: "bad regexp",
			rule: Pattern{ID: "broken", Pattern: `[`, Severity: SeverityError},
		},
		{
			name: "missing id",
			rule: Pattern{Pattern: `x`, Severity: SeverityError},
		},
		{
			name: "unknown severity",
			rule: Pattern{ID: "odd", Pattern: `x`, Severity: "fatal"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pack := &Pack{Patterns: []Pattern{tc.rule}}
			_, err := pack.Compile()
			assert.Error(t, err)
		})
	}
}
