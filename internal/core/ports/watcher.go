package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates the file was created, typically by an editor replacing it.
	OpCreate WatchOp = iota
	// OpWrite indicates the file was modified.
	OpWrite
)

// WatchEvent represents a change of the watched file.
type WatchEvent struct {
	// Path is the absolute path of the file that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher defines the interface for watching a single file for changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the file at path.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, path string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of change events. It ends when the watcher stops.
	Events() iter.Seq[WatchEvent]
}

// WatcherFactory creates a Watcher for one watch session.
type WatcherFactory func() (Watcher, error)
