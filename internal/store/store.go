// Package store reads and writes layout documents, either at an explicit
// path or as named layouts in a directory.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/relayout/internal/layout"
)

const layoutExt = ".yaml"

// ErrNotFound is returned when a named layout does not exist.
var ErrNotFound = errors.New("layout not found")

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Decode parses a layout document.
func Decode(data []byte) (layout.Layout, error) {
	var l layout.Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return layout.Layout{}, fmt.Errorf("layout document is empty")
		}
		return layout.Layout{}, err
	}
	for i, w := range l.Windows {
		if w.ScreenNum < 1 {
			return layout.Layout{}, fmt.Errorf("window %d (%s): screen_num must be >= 1, got %d", i+1, w, w.ScreenNum)
		}
	}
	return l, nil
}

// Encode renders the saved form of a layout.
func Encode(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l.Saved()); err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads and parses the layout at path. A leading "~" is expanded.
func Load(path string) (layout.Layout, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return layout.Layout{}, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to read layout %s: %w", expanded, err)
	}
	l, err := Decode(data)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to parse layout %s: %w", expanded, err)
	}
	return l, nil
}

// WriteFile saves l at path, creating parent directories as needed.
func WriteFile(path string, l layout.Layout) error {
	expanded, err := ExpandHome(path)
	if err != nil {
		return err
	}
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout %s: %w", expanded, err)
	}
	return nil
}

// Store keeps named layouts as <Dir>/<name>.yaml.
type Store struct {
	Dir string
}

// ValidateName rejects names that are empty or would escape the store directory.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("layout name is required")
	}
	if strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid layout name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid layout name %q", name)
	}
	return nil
}

// Path returns the file backing the named layout.
func (s Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	dir, err := ExpandHome(s.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.TrimSpace(name)+layoutExt), nil
}

// Write saves l under name, replacing any existing layout.
func (s Store) Write(name string, l layout.Layout) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := WriteFile(path, l); err != nil {
		return fmt.Errorf("failed to save layout %q: %w", name, err)
	}
	return nil
}

// Read loads the named layout. A missing layout gives ErrNotFound.
func (s Store) Read(name string) (layout.Layout, error) {
	path, err := s.Path(name)
	if err != nil {
		return layout.Layout{}, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return layout.Layout{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Load(path)
}

// Delete removes the named layout. A missing layout gives ErrNotFound.
func (s Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}
	return nil
}

// List returns the stored layout names in sorted order. A missing
// directory holds no layouts.
func (s Store) List() ([]string, error) {
	dir, err := ExpandHome(s.Dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, layoutExt) {
			continue
		}
		out = append(out, strings.TrimSuffix(name, layoutExt))
	}
	sort.Strings(out)
	return out, nil
}
