package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/go-enry/go-enry/v2"

	"comform/internal/diag"
)

const python = "Python"

// directories never descended into when walking
var skipDirs = map[string]struct{}{
	".direnv": {}, ".eggs": {}, ".git": {}, ".hg": {}, ".ipynb_checkpoints": {},
	".mypy_cache": {}, ".nox": {}, ".pytest_cache": {}, ".ruff_cache": {},
	".tox": {}, ".svn": {}, ".venv": {}, ".vscode": {}, "__pycache__": {},
	"__pypackages__": {}, "_build": {}, "buck-out": {}, "build": {}, "dist": {},
	"venv": {}, "node_modules": {},
}

// ValidatePath checks that path names an existing Python source file.
// Failures are *diag.ValidationError.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &diag.ValidationError{Path: path, Reason: "no such file or directory"}
		}
		return &diag.ValidationError{Path: path, Reason: err.Error()}
	}
	if info.IsDir() {
		return &diag.ValidationError{Path: path, Reason: "is a directory"}
	}
	if !info.Mode().IsRegular() {
		return &diag.ValidationError{Path: path, Reason: "not a regular file"}
	}
	if slices.Contains(enry.GetLanguagesByExtension(filepath.Base(path), nil, nil), python) {
		return nil
	}
	if filepath.Ext(path) == "" && hasPythonShebang(path) {
		return nil
	}
	return &diag.ValidationError{Path: path, Reason: "not a Python source file"}
}

// isPythonSource reports whether a walked file is unambiguously Python by
// its extension.
func isPythonSource(path string) bool {
	langs := enry.GetLanguagesByExtension(filepath.Base(path), nil, nil)
	return len(langs) == 1 && langs[0] == python
}

func hasPythonShebang(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 256)
	n, _ := f.Read(head)
	lang, _ := enry.GetLanguageByShebang(head[:n])
	return lang == python
}

// CollectFiles expands paths into a sorted, duplicate-free list of Python
// files. Explicit file arguments are validated; directories are walked.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			if err := ValidatePath(p); err != nil {
				return nil, err
			}
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if _, skip := skipDirs[d.Name()]; skip && path != p {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && isPythonSource(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
