package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig marks every user-facing configuration or usage error.
	// The CLI exits with status 2 when it finds this error in the chain.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInputReadFailed is returned when the CSS input cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input")

	// ErrOutputWriteFailed is returned when the minified CSS cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output")

	// ErrSourceMapReadFailed is returned when an input source map cannot be read.
	ErrSourceMapReadFailed = zerr.New("failed to read input source map")

	// ErrSourceMapWriteFailed is returned when the output source map cannot be written.
	ErrSourceMapWriteFailed = zerr.New("failed to write source map")

	// ErrSourceMapMergeFailed is returned when the input map cannot be applied to the output map.
	ErrSourceMapMergeFailed = zerr.New("failed to apply input source map")

	// ErrMinifyFailed is returned when the engine rejects the input.
	ErrMinifyFailed = zerr.New("minification failed")

	// ErrEmptyEngineOutput is returned when an engine returns neither text nor a result.
	ErrEmptyEngineOutput = zerr.New("engine returned no output")

	// ErrWatchFailed is returned when the input file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch input file")
)

// NewConfigError returns a user-facing configuration error with msg as its
// message and ErrInvalidConfig as its cause. Details go into zerr metadata.
func NewConfigError(msg string) error {
	return zerr.Wrap(ErrInvalidConfig, msg)
}
