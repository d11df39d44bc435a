package data

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sources is an ordered list of resource roots. Open searches the roots in
// the order they were added and returns the first match.
type Sources struct {
	roots []root
}

type root struct {
	name   string
	fsys   fs.FS
	closer io.Closer
}

var _ fs.FS = (*Sources)(nil)

// Add registers path as a zip archive when it ends in .zip and as a
// directory otherwise.
func (s *Sources) Add(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return s.AddZip(path)
	}
	return s.AddDirectory(path)
}

// AddDirectory registers a directory root.
func (s *Sources) AddDirectory(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("add resource directory: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("add resource directory %s: not a directory", path)
	}
	s.roots = append(s.roots, root{name: path, fsys: os.DirFS(path)})
	return nil
}

// AddZip registers a zip archive root. The archive stays open until Close.
func (s *Sources) AddZip(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("add resource zipfile: %w", err)
	}
	s.roots = append(s.roots, root{name: path, fsys: zr, closer: zr})
	return nil
}

// AddFS registers an arbitrary filesystem, such as an embed.FS.
func (s *Sources) AddFS(name string, fsys fs.FS) {
	s.roots = append(s.roots, root{name: name, fsys: fsys})
}

// Len returns the number of registered roots.
func (s *Sources) Len() int { return len(s.roots) }

func (s *Sources) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, r := range s.roots {
		f, err := r.fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s in %s: %w", name, r.name, err)
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Close releases every archive root.
func (s *Sources) Close() error {
	var errs []error
	for _, r := range s.roots {
		if r.closer != nil {
			errs = append(errs, r.closer.Close())
		}
	}
	s.roots = nil
	return errors.Join(errs...)
}
