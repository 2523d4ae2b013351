package domain

import "go.trai.ch/csso/internal/sourcemap"

// MinifyOptions are passed to the engine for one pass.
type MinifyOptions struct {
	// Filename is the input path relative to the working directory with forward
	// slashes. Engines use it in diagnostics and as the map's source name.
	Filename        string
	SourceMap       bool
	Usage           *UsageData
	Restructure     bool
	ForceMediaMerge bool
	Comments        CommentsMode
	Debug           int
}

// EngineOutput is what an engine hands back: either Text or *MinifyResult.
type EngineOutput interface {
	engineOutput()
}

// Text is the output of engines that only return minified CSS.
type Text string

// MinifyResult is minified CSS with an optional source map.
type MinifyResult struct {
	CSS string
	Map *sourcemap.Map
}

func (Text) engineOutput()          {}
func (*MinifyResult) engineOutput() {}
