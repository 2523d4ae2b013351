// Package config turns command-line flags and the optional defaults file into a
// domain.Config.
package config

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Built-in defaults for flags that were neither given nor set in the defaults file.
const (
	DefaultInputSourceMap = domain.InputMapAuto
	DefaultSourceMap      = domain.OutputMapNone
	DefaultComments       = domain.CommentsExclamation
)

var knownEngines = []string{domain.EngineESBuild, domain.EngineTdewolff, domain.EngineCSSMin}

// Loader implements ports.ConfigLoader.
type Loader struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewLoader creates a new Loader reading files through fs.
func NewLoader(fs ports.FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fs, logger: logger}
}

// Load builds the configuration for one invocation. Relative paths are resolved
// against workDir.
func (l *Loader) Load(workDir string, flags domain.Flags) (*domain.Config, error) {
	if flags.ConfigFile != "" {
		defaults, err := l.readDefaults(absPath(workDir, flags.ConfigFile))
		if err != nil {
			return nil, err
		}
		applyDefaults(&flags, defaults)
	}

	cfg := &domain.Config{
		InputFile:       domain.StdinMarker,
		InputSourceMap:  domain.InputMapMode(orDefault(flags.InputSourceMap, string(DefaultInputSourceMap))),
		SourceMap:       domain.OutputMapMode(orDefault(flags.SourceMap, string(DefaultSourceMap))),
		DeclarationList: flags.DeclarationList,
		Restructure:     !flags.NoRestructure,
		ForceMediaMerge: flags.ForceMediaMerge,
		Statistics:      flags.Statistics,
		Debug:           ParseDebug(flags.Debug),
		Watch:           flags.Watch,
		Engine:          orDefault(flags.Engine, domain.DefaultEngine),
		WorkDir:         workDir,
	}

	if flags.Input != "" {
		cfg.InputFile = absPath(workDir, flags.Input)
	}
	if flags.Output != "" {
		cfg.OutputFile = absPath(workDir, flags.Output)
	}

	comments, err := domain.ParseCommentsMode(orDefault(flags.Comments, string(DefaultComments)))
	if err != nil {
		return nil, err
	}
	cfg.Comments = comments

	if !slices.Contains(knownEngines, cfg.Engine) {
		return nil, domain.NewConfigError("wrong value for `engine` option: " + cfg.Engine)
	}

	if flags.Usage != "" {
		usage, err := l.readUsage(absPath(workDir, flags.Usage))
		if err != nil {
			return nil, err
		}
		cfg.Usage = usage
	}

	if cfg.Watch && cfg.IsStdin() {
		l.logger.Warn("--watch needs an input file and is ignored for standard input")
		cfg.Watch = false
	}

	return cfg, nil
}

// ParseDebug converts a --debug value to a level. An empty value is 0, a value
// that is not a number is 1 and negative levels are clamped to 0.
func ParseDebug(value string) int {
	if value == "" {
		return 0
	}
	level, err := strconv.Atoi(value)
	if err != nil {
		return 1
	}
	return max(level, 0)
}

func (l *Loader) readDefaults(path string) (*Defaults, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		cfgErr := domain.NewConfigError("cannot read config file")
		return nil, zerr.With(zerr.With(cfgErr, "path", path), "reason", err.Error())
	}

	var defaults Defaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		cfgErr := domain.NewConfigError("config file is not valid YAML")
		return nil, zerr.With(zerr.With(cfgErr, "path", path), "reason", err.Error())
	}
	return &defaults, nil
}

func (l *Loader) readUsage(path string) (*domain.UsageData, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		cfgErr := domain.NewConfigError("cannot read usage file")
		return nil, zerr.With(zerr.With(cfgErr, "path", path), "reason", err.Error())
	}

	var usage domain.UsageData
	if err := json.Unmarshal(data, &usage); err != nil {
		cfgErr := domain.NewConfigError("usage file is not valid JSON")
		return nil, zerr.With(zerr.With(cfgErr, "path", path), "reason", err.Error())
	}
	return &usage, nil
}

// applyDefaults copies values from the defaults file into flags that were not
// given explicitly.
func applyDefaults(flags *domain.Flags, d *Defaults) {
	setString := func(name string, dst *string, src *string) {
		if src != nil && !flags.IsSet(name) {
			*dst = *src
		}
	}
	setBool := func(name string, dst *bool, src *bool) {
		if src != nil && !flags.IsSet(name) {
			*dst = *src
		}
	}

	setString(domain.FlagSourceMap, &flags.SourceMap, d.SourceMap)
	setString(domain.FlagInputSourceMap, &flags.InputSourceMap, d.InputSourceMap)
	setString(domain.FlagUsage, &flags.Usage, d.Usage)
	setString(domain.FlagComments, &flags.Comments, d.Comments)
	setString(domain.FlagEngine, &flags.Engine, d.Engine)
	setBool(domain.FlagDeclarationList, &flags.DeclarationList, d.DeclarationList)
	setBool(domain.FlagForceMediaMerge, &flags.ForceMediaMerge, d.ForceMediaMerge)
	setBool(domain.FlagStat, &flags.Statistics, d.Stat)

	if d.Restructure != nil && !flags.IsSet(domain.FlagNoRestructure) {
		flags.NoRestructure = !*d.Restructure
	}
	if d.Debug != nil && !flags.IsSet(domain.FlagDebug) {
		flags.Debug = strconv.Itoa(*d.Debug)
	}
}

func absPath(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
