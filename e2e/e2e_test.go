//go:build e2e

package e2e_test

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/csso/internal/sourcemap"
)

var cssoBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "csso-e2e-*")
	if err != nil {
		panic(err)
	}

	cssoBinary = filepath.Join(tmpDir, "csso")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", cssoBinary, "./cmd/csso")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build csso binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"inlinemap": cmdInlineMap,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")

	binDir := filepath.Dir(cssoBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	return nil
}

// cmdInlineMap decodes the inline source map annotated in a CSS file and writes
// it as indented JSON. Mappings are replaced by the original position of every
// segment, deduplicated in order, so the result does not depend on how the
// engine splits its output into segments.
//
//	inlinemap <css-file> <json-file>
func cmdInlineMap(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! inlinemap")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: inlinemap css-file json-file")
	}

	url, ok := sourcemap.FindAnnotation(ts.ReadFile(args[0]))
	if !ok || !sourcemap.IsDataURI(url) {
		ts.Fatalf("%s has no inline source map", args[0])
	}
	content, err := sourcemap.DecodeDataURI(url)
	ts.Check(err)
	m, err := sourcemap.Parse(content)
	ts.Check(err)
	segs, err := m.Segments()
	ts.Check(err)

	origins := []string{}
	seen := make(map[string]bool)
	for _, seg := range segs {
		if seg.Source < 0 {
			continue
		}
		origin := fmt.Sprintf("%s:%d:%d", m.Sources[seg.Source], seg.Line, seg.Column)
		if !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}

	names := m.Names
	if names == nil {
		names = []string{}
	}
	out, err := json.MarshalIndent(struct {
		Version        int       `json:"version"`
		Sources        []string  `json:"sources"`
		Names          []string  `json:"names"`
		SourcesContent []*string `json:"sourcesContent"`
		Origins        []string  `json:"origins"`
	}{m.Version, m.Sources, names, m.SourcesContent, origins}, "", "  ")
	ts.Check(err)
	ts.Check(os.WriteFile(ts.MkAbs(args[1]), append(out, '\n'), 0o600))
}
