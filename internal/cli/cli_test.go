package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
)

// execute runs the root command with args and a quiet logger.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const cycle5 = "1 4\n0 2\n1 3\n2 4\n3 0\n"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"color", "generate", "render", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ", []string{"svg", "dot"}},
		{"empty items", "json,,", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"out.svg":      "svg",
		"out.PNG":      "png",
		"a/b/c.pdf":    "pdf",
		"result.json":  "json",
		"graph.dot":    "dot",
		"noext":        "svg",
		"picture.jpeg": "svg",
	}
	for path, want := range tests {
		if got := formatForPath(path); got != want {
			t.Errorf("formatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"out/coloring.svg", "", "out/coloring"},
		{"out/coloring", "", "out/coloring"},
		{"", "data/graph.txt", "data/graph"},
		{"", "", "coloring"},
		{"x.txt", "graph.txt", "x.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifactsKeepsInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "result.json")
	if err := os.WriteFile(input, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("new"), "dot": []byte("graph G {}")},
		formats:   []string{"json", "dot"},
		input:     input,
	})
	if err != nil {
		t.Fatal(err)
	}

	if data, _ := os.ReadFile(input); string(data) != "original" {
		t.Errorf("input overwritten: %q", data)
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "result.colored.json")); string(data) != "new" {
		t.Errorf("result.colored.json = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "result.dot")); err != nil {
		t.Errorf("result.dot: %v", err)
	}
}

func TestMergeParamFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	flagParams := colony.DefaultParams()
	registerParamFlags(cmd, &flagParams)
	if err := cmd.ParseFlags([]string{"--ants", "3", "--rho", "0.25"}); err != nil {
		t.Fatal(err)
	}

	fromFile := colony.DefaultParams()
	fromFile.NumIterations = 7
	fromFile.NumAnts = 40
	mergeParamFlags(cmd, flagParams, &fromFile)

	if fromFile.NumAnts != 3 || fromFile.Rho != 0.25 {
		t.Errorf("flags not applied: %+v", fromFile)
	}
	if fromFile.NumIterations != 7 {
		t.Errorf("unset flag overrode file value: iterations = %d", fromFile.NumIterations)
	}
}

func TestColorCommandWritesOutputs(t *testing.T) {
	input := writeGraphFile(t, cycle5)
	out := filepath.Join(t.TempDir(), "out", "coloring")

	err := execute(t, "color", input,
		"--seed", "1", "--iterations", "5", "--ants", "4", "--no-cache",
		"-f", "dot,json", "-o", out)
	if err != nil {
		t.Fatalf("color: %v", err)
	}

	doc, err := pkgio.ImportDocument(out + ".json")
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if doc.Colors != 3 {
		t.Errorf("colors = %d, want 3 for an odd cycle", doc.Colors)
	}
	if doc.Seed == nil || *doc.Seed != 1 {
		t.Errorf("seed = %v, want 1", doc.Seed)
	}
	if _, err := doc.Validate(); err != nil {
		t.Errorf("document invalid: %v", err)
	}

	dot, err := os.ReadFile(out + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "0 -- 1") {
		t.Errorf("dot output missing edge:\n%s", dot)
	}
}

func TestColorCommandGenerateAndSave(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "generated.txt")
	err := execute(t, "color", "--generate", "12", "--density", "0.4", "--save", saved,
		"--seed", "9", "--iterations", "3", "--no-cache")
	if err != nil {
		t.Fatalf("color --generate: %v", err)
	}
	lists, err := pkgio.ImportAdjacencyList(saved)
	if err != nil {
		t.Fatalf("saved graph unreadable: %v", err)
	}
	if lists.N() != 12 {
		t.Errorf("saved graph has %d vertices, want 12", lists.N())
	}
}

func TestColorCommandErrors(t *testing.T) {
	graphFile := writeGraphFile(t, cycle5)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"color", filepath.Join(t.TempDir(), "nope.txt"), "--no-cache"}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"color", graphFile, "-f", "gif", "--no-cache"}, errors.ErrCodeInvalidFormat},
		{"bad rho", []string{"color", graphFile, "--rho", "1.5", "--no-cache"}, errors.ErrCodeInvalidParams},
		{"self loop", []string{"color", writeGraphFile(t, "0 1\n0\n"), "--symmetrize=false", "--no-cache"}, errors.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestColorCommandNeedsSource(t *testing.T) {
	if err := execute(t, "color", "--no-cache"); err == nil {
		t.Error("expected an error without a graph source")
	}
}

func TestGenerateThenRender(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "g.txt")
	if err := execute(t, "generate", "8", "--seed", "2", "-o", graphPath); err != nil {
		t.Fatalf("generate: %v", err)
	}

	docPath := filepath.Join(dir, "result.json")
	if err := execute(t, "color", graphPath, "--seed", "2", "--iterations", "3", "--no-cache", "-o", docPath); err != nil {
		t.Fatalf("color: %v", err)
	}

	dotPath := filepath.Join(dir, "drawing.dot")
	if err := execute(t, "render", docPath, "-o", dotPath, "--detailed", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	err := execute(t, "generate", "many")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"negative vertices", `{"graph": {"vertices": -1, "edges": []}, "colors": 0, "coloring": []}`, errors.ErrCodeInvalidGraph},
		{"uncolored", `{"graph": {"vertices": 2, "edges": [[0, 1]]}, "colors": 0, "coloring": [-1, -1]}`, errors.ErrCodeInvalidInput},
		{"wrong color count", `{"graph": {"vertices": 2, "edges": [[0, 1]]}, "colors": 5, "coloring": [0, 1]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "result.json")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			err := execute(t, "render", path, "-f", "dot", "--no-cache")
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}
