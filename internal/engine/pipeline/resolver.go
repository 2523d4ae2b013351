package pipeline

import (
	"path/filepath"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/sourcemap"
	"go.trai.ch/zerr"
)

// Resolver decides which input map is read and where the output map goes.
type Resolver struct {
	fs      ports.FileSystem
	workDir string
}

// NewResolver creates a Resolver that resolves relative paths against workDir.
func NewResolver(fs ports.FileSystem, workDir string) *Resolver {
	return &Resolver{fs: fs, workDir: workDir}
}

// Resolve computes the source map plan for one pass. The output mode is decided
// first because disabling output maps also disables input map lookup.
// inputFile is an absolute path or domain.StdinMarker; outputFile is an absolute
// path or empty.
func (r *Resolver) Resolve(
	source string,
	input domain.InputMapMode,
	output domain.OutputMapMode,
	inputFile, outputFile string,
) (domain.SourceMapPlan, error) {
	plan := domain.SourceMapPlan{Output: output}

	switch output {
	case "", domain.OutputMapNone:
		plan.Output = domain.OutputMapNone
		return plan, nil
	case domain.OutputMapInline:
	case domain.OutputMapFile:
		if outputFile == "" {
			return plan, domain.NewConfigError("output filename should be specified when `--source-map file` is used")
		}
		plan.OutputFile = outputFile + ".map"
	default:
		dest := r.abs(string(output))
		dir := filepath.Dir(dest)
		if !r.fs.Exists(dir) {
			return plan, domain.NewConfigError("directory for map file should exist: " + dir)
		}
		plan.OutputFile = dest
	}

	if inputFile == domain.StdinMarker {
		inputFile = ""
	}

	var mapFile string
	switch input {
	case "", domain.InputMapNone:
	case domain.InputMapAuto:
		if url, ok := sourcemap.FindAnnotation(source); ok {
			if sourcemap.IsDataURI(url) {
				content, err := sourcemap.DecodeDataURI(url)
				if err != nil {
					return plan, zerr.Wrap(err, domain.ErrSourceMapReadFailed.Error())
				}
				plan.InputMap = content
				plan.InputMapOrigin = domain.InlineOrigin
				return plan, nil
			}
			if inputFile != "" {
				mapFile = resolveFrom(filepath.Dir(inputFile), url)
			}
		} else if inputFile != "" && r.fs.Exists(inputFile+".map") {
			mapFile = inputFile + ".map"
		}
	default:
		mapFile = r.abs(string(input))
	}

	if mapFile == "" {
		return plan, nil
	}

	content, err := r.fs.ReadFile(mapFile)
	if err != nil {
		return plan, zerr.With(zerr.Wrap(err, domain.ErrSourceMapReadFailed.Error()), "path", mapFile)
	}
	plan.InputMap = content
	plan.InputMapOrigin = mapFile

	return plan, nil
}

func (r *Resolver) abs(p string) string {
	return resolveFrom(r.workDir, p)
}

func resolveFrom(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// relPath returns p relative to base with forward slashes, or p itself when no
// relative path exists.
func relPath(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return domain.ToSlash(p)
	}
	return domain.ToSlash(filepath.ToSlash(rel))
}
