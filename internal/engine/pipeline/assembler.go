package pipeline

import (
	"path/filepath"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/sourcemap"
	"go.trai.ch/zerr"
)

// Assembled is the final CSS text of a pass.
type Assembled struct {
	// CSS is the text to write, annotation included.
	CSS string
	// Annotation is the sourceMappingURL comment appended to CSS, if any.
	Annotation string
}

// Assembler merges source maps, writes map files and adds annotations.
type Assembler struct {
	fs ports.FileSystem
}

// NewAssembler creates an Assembler writing map files through fs.
func NewAssembler(fs ports.FileSystem) *Assembler {
	return &Assembler{fs: fs}
}

// Assemble produces the output text for res according to plan.
func (a *Assembler) Assemble(res *domain.MinifyResult, plan domain.SourceMapPlan, cfg *domain.Config) (Assembled, error) {
	if !plan.Generate() || res.Map == nil {
		return Assembled{CSS: res.CSS}, nil
	}

	if plan.InputMap != nil {
		if err := res.Map.ApplySourceMap(plan.InputMap, displayName(cfg)); err != nil {
			return Assembled{}, zerr.With(zerr.Wrap(err, domain.ErrSourceMapMergeFailed.Error()), "origin", plan.InputMapOrigin)
		}
	}

	content, err := res.Map.Bytes()
	if err != nil {
		return Assembled{}, err
	}

	var annotation string
	if plan.Inline() {
		annotation = sourcemap.Inline(content)
	} else {
		if err := a.fs.WriteFile(plan.OutputFile, content); err != nil {
			return Assembled{}, zerr.With(zerr.Wrap(err, domain.ErrSourceMapWriteFailed.Error()), "path", plan.OutputFile)
		}
		base := cfg.WorkDir
		if cfg.OutputFile != "" {
			base = filepath.Dir(cfg.OutputFile)
		}
		annotation = sourcemap.Annotation(relPath(base, plan.OutputFile))
	}

	return Assembled{CSS: res.CSS + annotation, Annotation: annotation}, nil
}
