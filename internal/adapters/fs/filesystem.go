// Package fs implements file access for minification passes.
package fs

import (
	"os"

	"go.trai.ch/csso/internal/core/ports"
)

var _ ports.FileSystem = (*OSFS)(nil)

const filePerm = 0o644

// OSFS implements ports.FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Exists reports whether a file or directory exists at path.
func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from the command line
	return os.ReadFile(path)
}

// WriteFile writes data to path, replacing any existing content.
func (o *OSFS) WriteFile(path string, data []byte) error {
	// #nosec G306 -- output files are meant to be readable
	return os.WriteFile(path, data, filePerm)
}
