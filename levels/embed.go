package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns a level file, preferring a copy under ./levels on disk so
// levels can be edited without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

// LoadScript returns a level script, disk first like Load.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return fmt.Sprintf("scripts/%s", s)
}
