package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/csso/internal/adapters/engine"
	"go.trai.ch/csso/internal/core/domain"
)

func TestTdewolff_Minify(t *testing.T) {
	e := engine.NewTdewolff()

	out, err := e.Minify(context.Background(), ".a {\n  color: #ff0000;\n}\n", domain.MinifyOptions{
		Filename: "style.css",
		Comments: domain.CommentsExclamation,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Text(".a{color:red}"), out)
}

func TestTdewolff_MinifyBlock(t *testing.T) {
	e := engine.NewTdewolff()

	out, err := e.MinifyBlock(context.Background(), "color: red; margin: 0px;", domain.MinifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.Text("color:red;margin:0"), out)
}

func TestTdewolff_Comments(t *testing.T) {
	e := engine.NewTdewolff()
	source := "/*! first */\n.a { color: red }\n/*! second */\n/* plain */"

	tests := []struct {
		mode domain.CommentsMode
		want domain.Text
	}{
		{mode: domain.CommentsExclamation, want: "/*! first *//*! second */.a{color:red}"},
		{mode: domain.CommentsFirstExclamation, want: "/*! first */.a{color:red}"},
		{mode: domain.CommentsNone, want: ".a{color:red}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			out, err := e.Minify(context.Background(), source, domain.MinifyOptions{Comments: tt.mode})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
