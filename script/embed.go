package script

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// LoadEmbedded reads one of the bundled scripts by name, with or
// without the .tengo extension.
func LoadEmbedded(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	data, err := scriptsFS.ReadFile("scripts/" + clean)
	if err != nil {
		return nil, fmt.Errorf("script: load embedded %s: %w", name, err)
	}
	return data, nil
}

// EmbeddedNames lists the bundled scripts.
func EmbeddedNames() []string {
	entries, err := scriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
