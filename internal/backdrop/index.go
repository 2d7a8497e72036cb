package backdrop

import (
	"os"
	"path/filepath"
	"strings"
)

// rank orders extensions when several files share a stem; formats with an
// alpha channel win.
var rank = map[string]int{
	".png":  3,
	".tga":  2,
	".jpg":  1,
	".jpeg": 1,
}

// Index maps lowercase image stems to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans dir and its subdirectories for background images. A
// missing directory gives an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if rank[ext] == 0 {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank[ext] > rank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the path for a background name. Names may carry a
// directory or an extension; only the stem is looked up.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

func (idx *Index) Len() int {
	return len(idx.entries)
}
