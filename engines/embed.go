package engines

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var CatalogFS embed.FS

// DefaultCatalogFile is the catalog shipped with the binary.
const DefaultCatalogFile = "engines.yaml"

// Load returns a catalog file, preferring an edited copy under engines/ on
// disk over the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanCatalogPath(name)
	if data, err := os.ReadFile(diskCatalogPath(clean)); err == nil {
		return data, nil
	}
	return CatalogFS.ReadFile(clean)
}

// LoadScript reads an embedded coefficient script.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskCatalogPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanCatalogPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "engines/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "engines/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "engines/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskCatalogPath(clean string) string {
	return filepath.Join("engines", filepath.FromSlash(clean))
}
