// Package domain holds the values that flow through one minification pass.
package domain

import "strings"

// StdinMarker stands in for the input path when CSS is read from standard input.
const StdinMarker = "<stdin>"

// InputMapMode selects where the input source map comes from. Any value other
// than the constants below is a path to the map file.
type InputMapMode string

const (
	// InputMapNone disables input map loading.
	InputMapNone InputMapMode = "none"
	// InputMapAuto looks for an annotation comment, then for a sibling .map file.
	InputMapAuto InputMapMode = "auto"
)

// OutputMapMode selects whether and where the output source map is written. Any
// value other than the constants below is a path to the map file.
type OutputMapMode string

const (
	// OutputMapNone disables source map generation.
	OutputMapNone OutputMapMode = "none"
	// OutputMapInline embeds the map in the output as a data URI.
	OutputMapInline OutputMapMode = "inline"
	// OutputMapFile writes the map next to the output file with a .map suffix.
	OutputMapFile OutputMapMode = "file"
)

// CommentsMode selects which comments survive minification.
type CommentsMode string

const (
	// CommentsExclamation keeps every /*! comment.
	CommentsExclamation CommentsMode = "exclamation"
	// CommentsFirstExclamation keeps only the first /*! comment.
	CommentsFirstExclamation CommentsMode = "first-exclamation"
	// CommentsNone drops all comments.
	CommentsNone CommentsMode = "none"
)

// ParseCommentsMode validates a --comments value.
func ParseCommentsMode(value string) (CommentsMode, error) {
	switch mode := CommentsMode(value); mode {
	case CommentsExclamation, CommentsFirstExclamation, CommentsNone:
		return mode, nil
	}
	return "", NewConfigError("wrong value for `comments` option: " + value)
}

// Engine names accepted by --engine.
const (
	EngineESBuild  = "esbuild"
	EngineTdewolff = "tdewolff"
	EngineCSSMin   = "cssmin"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineESBuild

// Config is the normalised configuration of one process invocation. It is built
// once from flags and never modified afterwards.
type Config struct {
	// InputFile is an absolute path, or StdinMarker.
	InputFile string
	// OutputFile is an absolute path, or empty for standard output.
	OutputFile      string
	InputSourceMap  InputMapMode
	SourceMap       OutputMapMode
	DeclarationList bool
	Restructure     bool
	ForceMediaMerge bool
	Comments        CommentsMode
	Usage           *UsageData
	Statistics      bool
	Debug           int
	Watch           bool
	Engine          string
	// WorkDir is the directory relative paths were resolved against.
	WorkDir string
}

// IsStdin reports whether input is read from standard input.
func (c *Config) IsStdin() bool {
	return c.InputFile == "" || c.InputFile == StdinMarker
}

// UsageData describes the selectors a page actually uses, letting engines that
// support it drop unused rules.
type UsageData struct {
	Tags      []string        `json:"tags,omitempty"`
	IDs       []string        `json:"ids,omitempty"`
	Classes   []string        `json:"classes,omitempty"`
	Scopes    [][]string      `json:"scopes,omitempty"`
	Blacklist *UsageBlacklist `json:"blacklist,omitempty"`
}

// UsageBlacklist lists selectors that must be removed.
type UsageBlacklist struct {
	Tags    []string `json:"tags,omitempty"`
	IDs     []string `json:"ids,omitempty"`
	Classes []string `json:"classes,omitempty"`
}

// ToSlash normalises path separators to forward slashes regardless of platform.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
