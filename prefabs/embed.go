package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the directory, relative to the working directory, whose files
// shadow the embedded prefabs and scripts.
const Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a prefab such as "character.yaml". A copy under Dir wins over
// the embedded one.
func Load(name string) ([]byte, error) {
	return readShadowed(PrefabsFS, prefabKey(name))
}

// LoadScript reads a tengo script by file name. "walk.tengo",
// "scripts/walk.tengo" and "prefabs/scripts/walk.tengo" name the same file.
func LoadScript(name string) ([]byte, error) {
	return readShadowed(ScriptsFS, scriptKey(name))
}

func readShadowed(embedded fs.FS, key string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(key))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, key)
}

// prefabKey maps a user supplied name to its path inside PrefabsFS.
func prefabKey(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
}

// scriptKey maps a user supplied name to its path inside ScriptsFS.
func scriptKey(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
