package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/spriteforge/pkg/imageio"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"diagonal", "recolor", "definitions", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

// execute runs the root command with args and returns the error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeSheet(t *testing.T, path string) {
	t.Helper()
	sheet := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			sheet.SetNRGBA(x, y, color.NRGBA{R: 100, G: 50, B: 25, A: 255})
		}
	}
	if err := imageio.Save(sheet, path); err != nil {
		t.Fatal(err)
	}
}

func TestDiagonalCommandSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hero.png")
	out := filepath.Join(dir, "hero_ne.png")
	writeSheet(t, src)

	err := execute(t, "diagonal", src, out, "--direction", "ne", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	row, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := row.Bounds().Size(); got != image.Pt(256, 64) {
		t.Errorf("output size = %v, want 256x64", got)
	}
}

func TestDiagonalCommandRejectsBadDirection(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hero.png")
	writeSheet(t, src)

	err := execute(t, "diagonal", src, filepath.Join(dir, "out.png"),
		"--direction", "north", "--no-cache")
	if err == nil {
		t.Fatal("invalid direction should fail")
	}
}

func TestDiagonalCommandRequiresDirection(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "diagonal", filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"))
	if err == nil {
		t.Fatal("missing --direction should fail")
	}
}

func TestDiagonalCommandBatchDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSheet(t, filepath.Join(in, "body", "hero.png"))

	err := execute(t, "diagonal", in, out, "--direction", "sw", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "body", "hero_diagonal.png")); err != nil {
		t.Errorf("batch output missing: %v", err)
	}
}

func TestRecolorCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hair.png")
	out := filepath.Join(dir, "hair_red.png")
	writeSheet(t, src)

	err := execute(t, "recolor", src, out,
		"--old-colors", "100,50,25", "--new-color", "200,30,30", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	img, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, G: 30, B: 30, A: 255}) {
		t.Errorf("pixel = %v, want recolored", got)
	}
}

func TestRecolorCommandRejectsBadColor(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hair.png")
	writeSheet(t, src)

	err := execute(t, "recolor", src, filepath.Join(dir, "out.png"),
		"--old-colors", "not-a-color", "--new-color", "1,2,3", "--no-cache")
	if err == nil {
		t.Fatal("invalid color should fail")
	}
}

func TestDefinitionsCommandDryRun(t *testing.T) {
	root := t.TempDir()
	sheets := filepath.Join(root, "spritesheets")
	defs := filepath.Join(root, "sheet_definitions")
	for _, dir := range []string{filepath.Join(sheets, "torso", "shirt"), defs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sheets, "torso", "shirt", "male.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "definitions",
		"--spritesheets", sheets, "--definitions", defs, "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(defs, "torso.json")); !os.IsNotExist(err) {
		t.Error("dry run must not create definition files")
	}
}

func TestVersionFlag(t *testing.T) {
	root := newTestCLI().RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("--version should print build information")
	}
}
