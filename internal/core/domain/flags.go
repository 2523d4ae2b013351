package domain

// Flags are the raw command-line values before normalisation. Changed holds the
// long names of the flags given explicitly, which take precedence over the
// defaults file.
type Flags struct {
	Input           string
	Output          string
	InputSourceMap  string
	SourceMap       string
	Usage           string
	Comments        string
	Engine          string
	ConfigFile      string
	Debug           string
	DeclarationList bool
	NoRestructure   bool
	ForceMediaMerge bool
	Statistics      bool
	Watch           bool
	Changed         map[string]bool
}

// Flag names shared by the command line and the defaults file.
const (
	FlagInput           = "input"
	FlagOutput          = "output"
	FlagSourceMap       = "source-map"
	FlagInputSourceMap  = "input-source-map"
	FlagUsage           = "usage"
	FlagDeclarationList = "declaration-list"
	FlagNoRestructure   = "no-restructure"
	FlagForceMediaMerge = "force-media-merge"
	FlagComments        = "comments"
	FlagStat            = "stat"
	FlagDebug           = "debug"
	FlagWatch           = "watch"
	FlagEngine          = "engine"
	FlagConfig          = "config"
)

// IsSet reports whether the flag called name was given on the command line.
func (f *Flags) IsSet(name string) bool {
	return f.Changed[name]
}
