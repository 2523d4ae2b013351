package domain

// InlineOrigin labels an input map decoded from a data URI annotation.
const InlineOrigin = "<inline>"

// SourceMapPlan is the source map decision for one pass.
type SourceMapPlan struct {
	// InputMap is the input map content, nil when there is none.
	InputMap []byte
	// InputMapOrigin is the map's path, InlineOrigin, or empty.
	InputMapOrigin string
	// Output is the configured output mode; OutputMapNone disables generation.
	Output OutputMapMode
	// OutputFile is the absolute path of the map file. Empty means inline.
	OutputFile string
}

// Generate reports whether an output map is produced.
func (p *SourceMapPlan) Generate() bool {
	return p.Output != "" && p.Output != OutputMapNone
}

// Inline reports whether the output map is embedded in the CSS.
func (p *SourceMapPlan) Inline() bool {
	return p.Generate() && p.OutputFile == ""
}
