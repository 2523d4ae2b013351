package engine

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/sourcemap"
	"go.trai.ch/zerr"
)

var _ ports.Engine = (*ESBuild)(nil)

// blockPrefix wraps a declaration list in a rule a stylesheet minifier can parse.
const (
	blockPrefix = "a{"
	blockSuffix = "}"
)

// ESBuild minifies CSS with esbuild's transform API. It produces source maps.
// Usage data and forced media merging are not supported by esbuild and are
// ignored.
type ESBuild struct{}

// NewESBuild creates a new ESBuild engine.
func NewESBuild() *ESBuild {
	return &ESBuild{}
}

// Name returns the engine name.
func (e *ESBuild) Name() string {
	return domain.EngineESBuild
}

// Version returns the esbuild version linked into the binary.
func (e *ESBuild) Version() string {
	return moduleVersion("github.com/evanw/esbuild")
}

// Minify minifies a full stylesheet.
func (e *ESBuild) Minify(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, m, err := e.transform(prepareComments(source, opts.Comments), opts)
	if err != nil {
		return nil, err
	}
	if m != nil {
		setContent(m, source)
	}
	return &domain.MinifyResult{CSS: code, Map: m}, nil
}

// MinifyBlock minifies a declaration list by wrapping it in a rule and cutting
// the rule off again afterwards.
func (e *ESBuild) MinifyBlock(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, m, err := e.transform(blockPrefix+prepareComments(source, opts.Comments)+blockSuffix, opts)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(code, blockPrefix) || !strings.HasSuffix(code, blockSuffix) {
		// esbuild drops rules without declarations.
		return &domain.MinifyResult{CSS: "", Map: emptyMap(m, opts.Filename)}, nil
	}
	code = strings.TrimSuffix(strings.TrimPrefix(code, blockPrefix), blockSuffix)

	if m != nil {
		if err := unwrapBlockMap(m, len(code)); err != nil {
			return nil, zerr.Wrap(err, "failed to adjust declaration list source map")
		}
		setContent(m, source)
	}
	return &domain.MinifyResult{CSS: code, Map: m}, nil
}

func (e *ESBuild) transform(source string, opts domain.MinifyOptions) (string, *sourcemap.Map, error) {
	to := api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     opts.Restructure,
		Sourcefile:       opts.Filename,
		LegalComments:    legalComments(opts.Comments),
		LogLevel:         logLevel(opts.Debug),
	}
	if opts.SourceMap {
		to.Sourcemap = api.SourceMapExternal
	}

	res := api.Transform(source, to)
	if len(res.Errors) > 0 {
		return "", nil, transformError(res.Errors)
	}

	code := strings.TrimRight(string(res.Code), "\n")
	if !opts.SourceMap {
		return code, nil, nil
	}

	m, err := sourcemap.Parse(res.Map)
	if err != nil {
		return "", nil, zerr.Wrap(err, "esbuild returned an unreadable source map")
	}
	return code, m, nil
}

func transformError(msgs []api.Message) error {
	first := msgs[0]
	err := zerr.Wrap(domain.ErrMinifyFailed, first.Text)
	if loc := first.Location; loc != nil {
		err = zerr.With(err, "file", loc.File)
		err = zerr.With(err, "line", loc.Line)
		err = zerr.With(err, "column", loc.Column)
	}
	if len(msgs) > 1 {
		err = zerr.With(err, "errors", len(msgs))
	}
	return err
}

func legalComments(mode domain.CommentsMode) api.LegalComments {
	if mode == domain.CommentsNone {
		return api.LegalCommentsNone
	}
	return api.LegalCommentsInline
}

// prepareComments blanks the exclamation comments esbuild must not keep in
// first-exclamation mode.
func prepareComments(source string, mode domain.CommentsMode) string {
	if mode != domain.CommentsFirstExclamation {
		return source
	}
	return blankComments(source, func(n int) bool { return n > 0 })
}

func logLevel(debug int) api.LogLevel {
	switch {
	case debug <= 0:
		return api.LogLevelSilent
	case debug == 1:
		return api.LogLevelWarning
	case debug == 2:
		return api.LogLevelInfo
	default:
		return api.LogLevelDebug
	}
}

// setContent records the original source text, which esbuild only sees after
// comment blanking or block wrapping.
func setContent(m *sourcemap.Map, source string) {
	if len(m.Sources) != 1 {
		return
	}
	m.SourcesContent = []*string{&source}
}

func emptyMap(m *sourcemap.Map, filename string) *sourcemap.Map {
	if m == nil {
		return nil
	}
	return &sourcemap.Map{Version: 3, Sources: []string{filename}}
}

// unwrapBlockMap shifts the mappings of a wrapped declaration list back onto
// the unwrapped output and source. Only the first line of either carries the
// wrapper prefix; segments that pointed into the wrapper are dropped.
func unwrapBlockMap(m *sourcemap.Map, codeLen int) error {
	segs, err := m.Segments()
	if err != nil {
		return err
	}

	shift := len(blockPrefix)
	kept := segs[:0]
	for _, seg := range segs {
		if seg.GenLine == 0 {
			seg.GenColumn -= shift
			if seg.GenColumn < 0 || seg.GenColumn >= codeLen {
				continue
			}
		}
		if seg.Source >= 0 && seg.Line == 0 {
			seg.Column = max(seg.Column-shift, 0)
		}
		kept = append(kept, seg)
	}
	m.SetSegments(kept)
	return nil
}
