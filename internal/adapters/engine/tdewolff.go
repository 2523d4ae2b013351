package engine

import (
	"context"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Engine = (*Tdewolff)(nil)

// Tdewolff minifies CSS with tdewolff/minify. It returns bare text and never
// produces a source map, so callers must not expect one.
type Tdewolff struct {
	m *minify.M
}

// NewTdewolff creates a new Tdewolff engine.
func NewTdewolff() *Tdewolff {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return &Tdewolff{m: m}
}

// Name returns the engine name.
func (t *Tdewolff) Name() string {
	return domain.EngineTdewolff
}

// Version returns the tdewolff/minify version linked into the binary.
func (t *Tdewolff) Version() string {
	return moduleVersion("github.com/tdewolff/minify/v2")
}

// Minify minifies a full stylesheet.
func (t *Tdewolff) Minify(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	return t.minify(ctx, source, opts, nil)
}

// MinifyBlock minifies a declaration list.
func (t *Tdewolff) MinifyBlock(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	return t.minify(ctx, source, opts, map[string]string{"inline": "1"})
}

func (t *Tdewolff) minify(ctx context.Context, source string, opts domain.MinifyOptions, params map[string]string) (domain.EngineOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Exclamation comments are taken out here and put back in front of the
	// result, so the selected ones survive regardless of minifier behaviour.
	kept := keptComments(exclamationComments(source), opts.Comments)
	stripped := blankComments(source, func(int) bool { return true })

	var out strings.Builder
	if err := t.m.MinifyMimetype([]byte("text/css"), &out, strings.NewReader(stripped), params); err != nil {
		err = zerr.Wrap(domain.ErrMinifyFailed, err.Error())
		return nil, zerr.With(err, "file", opts.Filename)
	}

	return domain.Text(strings.Join(kept, "") + out.String()), nil
}

func keptComments(comments []string, mode domain.CommentsMode) []string {
	switch mode {
	case domain.CommentsNone:
		return nil
	case domain.CommentsFirstExclamation:
		if len(comments) > 1 {
			return comments[:1]
		}
	}
	return comments
}
