package pipeline_test

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	gosourcemap "github.com/go-sourcemap/sourcemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports/mocks"
	"go.trai.ch/csso/internal/engine/pipeline"
	"go.trai.ch/csso/internal/sourcemap"
	"go.uber.org/mock/gomock"
)

func outputMap() *sourcemap.Map {
	return &sourcemap.Map{Version: 3, Sources: []string{"css/in.css"}, Mappings: "AAAA,EAAE"}
}

func TestAssembler_NoMap(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	cfg := &domain.Config{InputFile: inputFile, WorkDir: workDir}

	for _, tt := range []struct {
		name string
		res  *domain.MinifyResult
		plan domain.SourceMapPlan
	}{
		{name: "not requested", res: &domain.MinifyResult{CSS: "a{}", Map: outputMap()}, plan: domain.SourceMapPlan{Output: domain.OutputMapNone}},
		{name: "engine without map", res: &domain.MinifyResult{CSS: "a{}"}, plan: domain.SourceMapPlan{Output: domain.OutputMapInline}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := pipeline.NewAssembler(fs).Assemble(tt.res, tt.plan, cfg)
			require.NoError(t, err)
			assert.Equal(t, pipeline.Assembled{CSS: "a{}"}, out)
		})
	}
}

func TestAssembler_Inline(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	cfg := &domain.Config{InputFile: inputFile, WorkDir: workDir}

	out, err := pipeline.NewAssembler(fs).Assemble(
		&domain.MinifyResult{CSS: "a{b:c}", Map: outputMap()},
		domain.SourceMapPlan{Output: domain.OutputMapInline},
		cfg,
	)
	require.NoError(t, err)

	prefix := "\n/*# sourceMappingURL=data:application/json;base64,"
	require.True(t, strings.HasPrefix(out.Annotation, prefix))
	assert.Equal(t, "a{b:c}"+out.Annotation, out.CSS)

	payload := strings.TrimSuffix(strings.TrimPrefix(out.Annotation, prefix), " */")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3,"sources":["css/in.css"],"names":[],"mappings":"AAAA,EAAE"}`, string(decoded))
}

func TestAssembler_File(t *testing.T) {
	tests := []struct {
		name       string
		outputFile string
		mapFile    string
		want       string
	}{
		{
			name:       "next to output",
			outputFile: outputFile,
			mapFile:    outputFile + ".map",
			want:       "\n/*# sourceMappingURL=out.css.map */",
		},
		{
			name:       "relative to output directory",
			outputFile: outputFile,
			mapFile:    filepath.Join(workDir, "maps", "out.map"),
			want:       "\n/*# sourceMappingURL=../maps/out.map */",
		},
		{
			name:    "relative to working directory for stdout",
			mapFile: filepath.Join(workDir, "maps", "out.map"),
			want:    "\n/*# sourceMappingURL=maps/out.map */",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fs := mocks.NewMockFileSystem(ctrl)
			fs.EXPECT().WriteFile(tt.mapFile, gomock.Any()).DoAndReturn(func(_ string, data []byte) error {
				assert.JSONEq(t, `{"version":3,"sources":["css/in.css"],"names":[],"mappings":"AAAA,EAAE"}`, string(data))
				return nil
			})

			cfg := &domain.Config{InputFile: inputFile, OutputFile: tt.outputFile, WorkDir: workDir}
			out, err := pipeline.NewAssembler(fs).Assemble(
				&domain.MinifyResult{CSS: "a{}", Map: outputMap()},
				domain.SourceMapPlan{Output: domain.OutputMapFile, OutputFile: tt.mapFile},
				cfg,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Annotation)
			assert.Equal(t, "a{}"+tt.want, out.CSS)
		})
	}
}

func TestAssembler_MergesInputMap(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)

	var written []byte
	fs.EXPECT().WriteFile(outputFile+".map", gomock.Any()).DoAndReturn(func(_ string, data []byte) error {
		written = data
		return nil
	})

	cfg := &domain.Config{InputFile: inputFile, OutputFile: outputFile, WorkDir: workDir}
	plan := domain.SourceMapPlan{
		InputMap:       []byte(`{"version":3,"sources":["in.scss"],"names":[],"mappings":"AACA,EAAI","sourcesContent":["// scss"]}`),
		InputMapOrigin: inputFile + ".map",
		Output:         domain.OutputMapFile,
		OutputFile:     outputFile + ".map",
	}

	_, err := pipeline.NewAssembler(fs).Assemble(&domain.MinifyResult{CSS: "a{}", Map: outputMap()}, plan, cfg)
	require.NoError(t, err)

	consumer, err := gosourcemap.Parse("", written)
	require.NoError(t, err)
	source, _, line, column, ok := consumer.Source(1, 2)
	require.True(t, ok)
	assert.Equal(t, "in.scss", source)
	assert.Equal(t, 2, line)
	assert.Equal(t, 4, column)
	assert.Contains(t, string(written), `"sourcesContent":["// scss"]`)
}

func TestAssembler_Errors(t *testing.T) {
	cfg := &domain.Config{InputFile: inputFile, OutputFile: outputFile, WorkDir: workDir}

	t.Run("bad input map", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fs := mocks.NewMockFileSystem(ctrl)

		_, err := pipeline.NewAssembler(fs).Assemble(
			&domain.MinifyResult{CSS: "a{}", Map: outputMap()},
			domain.SourceMapPlan{InputMap: []byte("{"), Output: domain.OutputMapInline},
			cfg,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrSourceMapMergeFailed.Error())
	})

	t.Run("map write fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fs := mocks.NewMockFileSystem(ctrl)
		fs.EXPECT().WriteFile(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := pipeline.NewAssembler(fs).Assemble(
			&domain.MinifyResult{CSS: "a{}", Map: outputMap()},
			domain.SourceMapPlan{Output: domain.OutputMapFile, OutputFile: outputFile + ".map"},
			cfg,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrSourceMapWriteFailed.Error())
	})
}
