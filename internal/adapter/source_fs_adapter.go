// Package adapter contains filesystem adapters for the cify CLI.
package adapter

import (
	"io"
	"os"

	m "cify.dev/pkg/cify/internal/model"
)

const (
	defaultDirPerm  os.FileMode = 0o750
	defaultFilePerm os.FileMode = 0o644
)

// SourceFSAdapter abstracts the filesystem operations the embedder relies on.
// It hides direct `os` access so the domain logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Open opens a file for reading.
	Open(path m.Path) (io.ReadCloser, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// Create creates or truncates a file for writing.
	Create(path m.Path) (io.WriteCloser, error)

	// Remove deletes a single file.
	Remove(path m.Path) error
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the embedder.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Open opens the file at path read-only.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	// #nosec G304 - reading the user supplied source is the purpose of the tool
	return os.Open(string(path))
}

// MkdirAll creates path and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), defaultDirPerm)
}

// Create opens path for writing, truncating existing content.
func (a *LocalSourceFSAdapter) Create(path m.Path) (io.WriteCloser, error) {
	// #nosec G304 - destination is chosen by the user
	return os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePerm)
}

// Remove deletes the file at path.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}
