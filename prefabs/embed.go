package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ItemsDir holds the item assets inside the prefab tree.
const ItemsDir = "items"

//go:embed *.yaml items/*.yaml
var PrefabsFS embed.FS

// Load returns a prefab's bytes, preferring a copy under ./prefabs on disk.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// Assets returns the prefab tree, preferring ./prefabs on disk when it holds
// item assets.
func Assets() fs.FS {
	if entries, err := os.ReadDir(filepath.Join("prefabs", ItemsDir)); err == nil && len(entries) > 0 {
		return os.DirFS("prefabs")
	}
	return PrefabsFS
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
