// Package manifest extracts and validates plugin metadata fields.
//
// The manifest is treated as a line-oriented `"key": "value"` file, not as a
// full JSON document. The marketplace gate only cares about two fields, and
// line matching keeps the check honest about what it actually validates.
package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Manifest holds the extracted fields of a plugin descriptor.
type Manifest struct {
	Path        string
	Version     string
	Description string

	versionFound     bool
	descriptionFound bool
}

var (
	versionRe     = regexp.MustCompile(`"version"\s*:\s*"([^"]*)"`)
	descriptionRe = regexp.MustCompile(`"description"\s*:\s*"([^"]*)"`)
)

// Extract reads the manifest and pulls out the version and description
// fields by line matching. A missing or unreadable file is an error.
func Extract(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m := &Manifest{Path: path}
	for _, line := range strings.Split(string(data), "\n") {
		if !m.versionFound {
			if sub := versionRe.FindStringSubmatch(line); sub != nil {
				m.Version = sub[1]
				m.versionFound = true
			}
		}
		if !m.descriptionFound {
			if sub := descriptionRe.FindStringSubmatch(line); sub != nil {
				m.Description = sub[1]
				m.descriptionFound = true
			}
		}
	}
	return m, nil
}

// descriptionEnders are the characters a marketplace description may end on.
const descriptionEnders = ".?!)"

// Problems returns every validation violation, in field order. An empty
// slice means the manifest is release-ready.
func (m *Manifest) Problems() []string {
	var problems []string

	switch {
	case !m.versionFound:
		problems = append(problems, "version field not found in manifest")
	case strings.HasPrefix(m.Version, "v"):
		problems = append(problems, fmt.Sprintf("version %q starts with 'v'; marketplace versions are bare semver", m.Version))
	}

	switch {
	case !m.descriptionFound:
		problems = append(problems, "description field not found in manifest")
	case m.Description == "" || !strings.ContainsRune(descriptionEnders, rune(m.Description[len(m.Description)-1])):
		problems = append(problems, fmt.Sprintf("description must end with one of %q", descriptionEnders))
	}

	return problems
}
