package ports

// FileSystem is the file access used by a minification pass. Every read or
// write of CSS and source maps goes through it.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to path, replacing any existing content.
	WriteFile(path string, data []byte) error
}
