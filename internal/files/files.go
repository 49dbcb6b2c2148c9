package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
)

// skipDirs are never descended into while walking a directory.
var skipDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Resolve expands user-provided paths into a list of regular files.
// Directories are walked recursively, arguments containing glob characters
// are expanded with ** support, and anything matching an exclude pattern is
// dropped. Files keep discovery order and appear once.
func Resolve(paths []string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, p := range paths {
		resolved, err := resolvePath(p, exclude)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

func resolvePath(p string, exclude []string) ([]string, error) {
	info, err := os.Stat(p)
	if err == nil && info.IsDir() {
		return findFilesInDir(p, exclude)
	}

	// Check if it contains glob characters.
	if err != nil && strings.ContainsAny(p, "*?[{") {
		return expandGlob(p, exclude)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", p, err)
	}

	// Explicitly named files are only checked against excludes.
	if isExcluded(p, exclude) {
		return nil, nil
	}
	return []string{filepath.Clean(p)}, nil
}

func expandGlob(pattern string, exclude []string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}

		if info.IsDir() {
			nested, err := findFilesInDir(m, exclude)
			if err != nil {
				return nil, err
			}
			filtered = append(filtered, nested...)
			continue
		}

		if !info.Mode().IsRegular() || isExcluded(m, exclude) {
			continue
		}
		filtered = append(filtered, m)
	}

	return filtered, nil
}

func findFilesInDir(dir string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (skipDirs[d.Name()] || isExcluded(path, exclude)) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip irregular files.
		if !d.Type().IsRegular() {
			return nil
		}

		if strings.HasSuffix(d.Name(), BackupSuffix) || isExcluded(path, exclude) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return files, nil
}

// isExcluded matches a path against exclude patterns, both as a whole
// slash-separated path and by base name.
func isExcluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
