// Package manifest implements the asset manifest generator (SPEC_FULL.md
// §4.12, grounded on original_source/src/manifest.rs): a directory walk
// over assets/ and libraries/ that classifies each file by extension and
// emits a single top-level HXON Array of Struct{path, type, id}.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xAdk/mm2-tool/internal/hxon"
)

// Generate walks root/assets and root/libraries and returns the HXON Array
// value of the resulting manifest entries. Files with an unrecognized
// extension are reported via warn and skipped rather than aborting the walk
// (matching the original's per-file eprintln-and-continue behavior).
func Generate(root string, warn func(string)) (hxon.Array, error) {
	var entries hxon.Array

	for _, dir := range []string{"assets", "libraries"} {
		err := visitFiles(filepath.Join(root, dir), func(path string) error {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			slashPath := filepath.ToSlash(rel)

			fileType, err := classify(slashPath)
			if err != nil {
				warn(err.Error())
				return nil
			}

			file := hxon.String(slashPath)
			entries = append(entries, hxon.Struct{Fields: []hxon.StructField{
				{Key: "path", Value: file},
				{Key: "type", Value: hxon.String(fileType)},
				{Key: "id", Value: file},
			}})
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return entries, nil
}

// classify maps a manifest-relative file path to one of the game's asset
// type tags, disambiguating ".ogg" by its parent directory name.
func classify(slashPath string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(slashPath), ".")
	if ext == "" {
		return "", fmt.Errorf("%q has no extension", slashPath)
	}

	switch ext {
	case "ogg":
		parent := parentDirName(slashPath)
		switch parent {
		case "music":
			return "MUSIC", nil
		case "effects":
			return "SOUND", nil
		case "":
			return "", fmt.Errorf("sound file %q must have a parent directory to determine file type", slashPath)
		default:
			return "", fmt.Errorf("invalid parent %q for music file %q", parent, slashPath)
		}
	case "bik":
		return "BINARY", nil
	case "otf", "ttf":
		return "FONT", nil
	case "jpg", "png":
		return "IMAGE", nil
	case "csv", "dat", "json", "strings", "txt", "version":
		return "TEXT", nil
	default:
		return "", fmt.Errorf("invalid ext %q: no known file type for %q", ext, slashPath)
	}
}

// parentDirName returns the name of the second-to-last path component
// (the directory directly containing the file), or "" if there is none.
func parentDirName(slashPath string) string {
	parts := strings.Split(slashPath, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func visitFiles(dir string, visit func(path string) error) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return visit(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return visit(path)
	})
}
