package engine

import (
	"context"
	"strings"

	"github.com/dchest/cssmin"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
)

var _ ports.Engine = (*CSSMin)(nil)

// CSSMin minifies CSS with dchest/cssmin, a port of the YUI compressor rules.
// Like Tdewolff it returns bare text only.
type CSSMin struct{}

// NewCSSMin creates a new CSSMin engine.
func NewCSSMin() *CSSMin {
	return &CSSMin{}
}

// Name returns the engine name.
func (c *CSSMin) Name() string {
	return domain.EngineCSSMin
}

// Version returns the dchest/cssmin version linked into the binary.
func (c *CSSMin) Version() string {
	return moduleVersion("github.com/dchest/cssmin")
}

// Minify minifies a full stylesheet.
func (c *CSSMin) Minify(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kept, body := c.minify(source, opts.Comments, "", "")
	return domain.Text(kept + body), nil
}

// MinifyBlock minifies a declaration list by minifying it inside a throwaway rule.
func (c *CSSMin) MinifyBlock(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kept, body := c.minify(source, opts.Comments, blockPrefix, blockSuffix)
	body = strings.TrimSuffix(strings.TrimPrefix(body, blockPrefix), blockSuffix)
	return domain.Text(kept + body), nil
}

// minify returns the exclamation comments kept under mode and the minified
// source, wrapped in prefix and suffix, with all comments removed.
func (c *CSSMin) minify(source string, mode domain.CommentsMode, prefix, suffix string) (kept, body string) {
	kept = strings.Join(keptComments(exclamationComments(source), mode), "")
	stripped := blankComments(source, func(int) bool { return true })
	return kept, string(cssmin.Minify([]byte(prefix + stripped + suffix)))
}
