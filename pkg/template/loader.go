// loader.go - Load zip bundles and parse document.json.
package template

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadBundle opens a zip bundle, extracts it to a temp directory,
// parses document.json, resolves all asset paths, and returns the document.
// The returned cleanup function removes the temp directory.
func LoadBundle(path string) (*Document, func(), error) {
	noop := func() {}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, noop, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	tmpDir, err := os.MkdirTemp("", "canvaskit-*")
	if err != nil {
		return nil, noop, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	if err := extractZip(r, tmpDir); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("extract %s: %w", path, err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "document.json"))
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("read document.json: %w", err)
	}

	doc, err := parseDocument(data, tmpDir)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("parse document.json: %w", err)
	}

	return doc, cleanup, nil
}

// LoadData reads and parses a data.json file. Relative icon paths resolve
// against the file's directory. Returns warnings for issues.
func LoadData(path string) (*DataSpec, []string, error) {
	var warnings []string

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read data.json: %w", err)
	}

	var spec DataSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		warnings = append(warnings, fmt.Sprintf("malformed data.json: %v - using document defaults", err))
		return &DataSpec{}, warnings, nil
	}

	resolve := resolver(filepath.Dir(path))
	resolveTiles(spec.Tiles, resolve)
	for i := range spec.Entries {
		spec.Entries[i].Icon = resolveIcon(spec.Entries[i].Icon, resolve)
	}

	return &spec, warnings, nil
}

// parseDocument decodes a document and applies defaults. Relative asset
// paths are resolved against baseDir.
func parseDocument(data []byte, baseDir string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	applyDocumentDefaults(&doc)
	resolveAssetPaths(&doc, baseDir)
	return &doc, nil
}

// applyDocumentDefaults infers a missing kind and output name.
func applyDocumentDefaults(doc *Document) {
	doc.Kind = strings.ToLower(strings.TrimSpace(doc.Kind))
	if doc.Kind == "" {
		switch {
		case doc.Wheel != nil && doc.Graph == nil:
			doc.Kind = KindWheel
		case doc.Graph != nil && doc.Wheel == nil:
			doc.Kind = KindGraph
		}
	}
	if doc.Output == "" && (doc.Kind == KindWheel || doc.Kind == KindGraph) {
		doc.Output = doc.Kind + ".png"
	}
}

func resolver(baseDir string) func(string) string {
	return func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
}

// resolveAssetPaths makes all relative asset paths absolute using baseDir.
func resolveAssetPaths(doc *Document, baseDir string) {
	resolve := resolver(baseDir)

	for i := range doc.Fonts {
		doc.Fonts[i].Path = resolve(doc.Fonts[i].Path)
	}
	if doc.Wheel != nil {
		resolveTiles(doc.Wheel.Tiles, resolve)
	}
	if doc.Graph != nil {
		for i := range doc.Graph.Entries {
			doc.Graph.Entries[i].Icon = resolveIcon(doc.Graph.Entries[i].Icon, resolve)
		}
	}
}

func resolveTiles(tiles []TileSpec, resolve func(string) string) {
	for i := range tiles {
		c := &tiles[i].Content
		c.Icon = resolveIcon(c.Icon, resolve)
		resolveTiles(c.Tiles, resolve)
	}
}

// resolveIcon leaves URLs alone.
func resolveIcon(p string, resolve func(string) string) string {
	if isURL(p) {
		return p
	}
	return resolve(p)
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// extractZip extracts all files from a zip reader into destDir.
func extractZip(r *zip.ReadCloser, destDir string) error {
	for _, f := range r.File {
		target := filepath.Join(destDir, f.Name)

		// Guard against zip slip.
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal path in zip: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

// extractFile writes a single zip entry to disk.
func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
