package resolve

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Inputs resolves a mixed list of file paths, directories, and glob patterns
// into a flat, deduplicated list of concrete file paths. Directories are
// walked recursively and filtered by the extension list; globs support `**`.
// Order follows the input arguments, with directory and glob expansions
// sorted for determinism. Extensions are compared case-insensitively and
// without a leading dot. An empty extension list admits every file.
func Inputs(args []string, extensions []string) ([]string, error) {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			extSet[ext] = struct{}{}
		}
	}

	var (
		out  []string
		seen = map[string]struct{}{}
	)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}

		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			files, walkErr := walkDir(arg, extSet)
			if walkErr != nil {
				return nil, walkErr
			}
			for _, f := range files {
				add(f)
			}
		case err == nil:
			// Literal files are kept regardless of extension filters.
			add(arg)
		default:
			matches, globErr := expandGlob(arg)
			if globErr != nil {
				return nil, globErr
			}
			for _, m := range matches {
				if matchesExtension(m, extSet) {
					add(m)
				}
			}
		}
	}
	return out, nil
}

func walkDir(root string, extSet map[string]struct{}) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matchesExtension(path, extSet) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan directory %s: %w", root, err)
	}
	return files, nil
}

func expandGlob(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(pattern)
	matches, err := doublestar.Glob(os.DirFS(base), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(base, m))
	}
	return out, nil
}

func matchesExtension(path string, extSet map[string]struct{}) bool {
	if len(extSet) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := extSet[ext]
	return ok
}
