package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , json ", []string{"svg", "json"}},
		{"trailing comma", "png,", []string{"png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(10, 8, true)
	for _, want := range []string{"10 books", "2 dropped", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine = %q, missing %q", line, want)
		}
	}
	if strings.Contains(statsLine(3, 3, false), "dropped") {
		t.Error("nothing dropped should not be reported")
	}
}

func writeLibrary(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "library.yaml")
	lib := library.Library{
		FrameWidth: 1000,
		Shelves: []library.Shelf{{Books: []library.Book{
			{Title: "Dune", Author: library.Author{FirstName: "Frank", LastName: "Herbert"}, Year: 1965},
			{Title: "1984", Author: library.Author{FirstName: "George", LastName: "Orwell"}, Year: 1949},
		}}},
	}
	if err := library.Save(path, lib); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envCacheDir, filepath.Join(dir, "cache"))
	t.Setenv(envRedisURL, "")
	input := writeLibrary(t, dir)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "svg,json", "--seed", "3", "--book", "dark"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v\n%s", err, logs.String())
	}

	svg, err := os.ReadFile(filepath.Join(dir, "library.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output missing <svg> element")
	}
	data, err := os.ReadFile(filepath.Join(dir, "library.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !bytes.Contains(data, []byte(`"ops"`)) {
		t.Error("json output should contain the plan operations")
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeLibrary(t, dir)
	out := filepath.Join(dir, "shelf.json")

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "json", "-o", out, "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte(`"ops"`)) {
		t.Error("json output should contain the plan operations")
	}
}

func TestRenderCommandDump(t *testing.T) {
	dir := t.TempDir()
	input := writeLibrary(t, dir)
	dump := filepath.Join(dir, "sorted.toml")

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "json", "--no-cache", "--sort", "title", "--dump", dump})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	lib, err := library.Load(dump)
	if err != nil {
		t.Fatalf("load dump: %v", err)
	}
	if got := lib.Shelves[0].Books[0].Title; got != "1984" {
		t.Errorf("first dumped title = %q, want %q", got, "1984")
	}
}

func TestRenderCommandRejectsBadOptions(t *testing.T) {
	dir := t.TempDir()
	input := writeLibrary(t, dir)

	tests := [][]string{
		{"render", input, "-f", "gif", "--no-cache"},
		{"render", input, "--book", "neon", "--no-cache"},
		{"render", input, "--sort", "colour", "--no-cache"},
		{"render", filepath.Join(dir, "missing.yaml"), "--no-cache"},
	}
	for _, args := range tests {
		c := New(&bytes.Buffer{}, LogInfo)
		root := c.RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestWriteArtifactsValidatesExtension(t *testing.T) {
	dir := t.TempDir()
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{pipeline.FormatSVG: []byte("<svg/>")},
		formats:   []string{pipeline.FormatSVG},
		input:     filepath.Join(dir, "library.yaml"),
		output:    filepath.Join(dir, "shelf.png"),
	})
	if err == nil {
		t.Error("expected an error for an svg written to a .png path")
	}
}
