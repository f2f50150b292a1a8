package batch

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/imageio"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// writeSprite saves a small opaque buffer; it takes the whole-buffer
// fallback path in the synthesizer, which keeps tests fast.
func writeSprite(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	if err := imageio.Save(img, path); err != nil {
		t.Fatal(err)
	}
}

func newProcessor() *Processor {
	return NewProcessor(pipeline.NewRunner(nil, nil, nil), nil)
}

func TestRunMirrorsTreeWithSuffix(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSprite(t, filepath.Join(in, "hero.png"))
	writeSprite(t, filepath.Join(in, "body", "female", "base.png"))
	writeSprite(t, filepath.Join(in, "body", "male", "base.PNG"))

	report, err := newProcessor().Run(context.Background(), Options{
		InputDir:  in,
		OutputDir: out,
		Workers:   2,
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "ne"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Processed != 3 {
		t.Errorf("processed = %d, want 3", report.Processed)
	}
	if report.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", report.Skipped)
	}

	wantFiles := []string{
		filepath.Join(out, "hero_diagonal.png"),
		filepath.Join(out, "body", "female", "base_diagonal.png"),
		filepath.Join(out, "body", "male", "base_diagonal.PNG"),
	}
	for _, f := range wantFiles {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing output %s: %v", f, err)
		}
	}
}

func TestRunIgnoresNonPNGFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSprite(t, filepath.Join(in, "hero.png"))
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := newProcessor().Run(context.Background(), Options{
		InputDir:  in,
		OutputDir: out,
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "sw"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Processed != 1 {
		t.Errorf("processed = %d, want 1", report.Processed)
	}
}

func TestRunSkipsCorruptFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSprite(t, filepath.Join(in, "good.png"))
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := newProcessor().Run(context.Background(), Options{
		InputDir:  in,
		OutputDir: out,
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "ne"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Processed != 1 {
		t.Errorf("processed = %d, want 1", report.Processed)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if _, err := os.Stat(filepath.Join(out, "bad_diagonal.png")); !os.IsNotExist(err) {
		t.Error("corrupt input should produce no output")
	}
}

func TestRunInvalidOptionsAbort(t *testing.T) {
	in := t.TempDir()
	writeSprite(t, filepath.Join(in, "hero.png"))

	_, err := newProcessor().Run(context.Background(), Options{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "north"},
	})
	if err == nil {
		t.Fatal("invalid direction should abort the run")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("error code = %v, want INVALID_DIRECTION", errors.GetCode(err))
	}
}

func TestRunMissingInputDir(t *testing.T) {
	_, err := newProcessor().Run(context.Background(), Options{
		InputDir:  filepath.Join(t.TempDir(), "absent"),
		OutputDir: t.TempDir(),
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "ne"},
	})
	if err == nil {
		t.Fatal("missing input dir should fail")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestRunCancelledContext(t *testing.T) {
	in := t.TempDir()
	writeSprite(t, filepath.Join(in, "hero.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProcessor().Run(ctx, Options{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Pipeline:  pipeline.Options{Operation: pipeline.OperationDiagonal, Direction: "ne"},
	})
	if err == nil {
		t.Fatal("cancelled context should abort the run")
	}
}

func TestRunRecolorSuffix(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSprite(t, filepath.Join(in, "hero.png"))

	report, err := newProcessor().Run(context.Background(), Options{
		InputDir:  in,
		OutputDir: out,
		Pipeline: pipeline.Options{
			Operation: pipeline.OperationRecolor,
			OldColors: []string{"10,20,30"},
			NewColor:  "200,0,0",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Processed != 1 {
		t.Errorf("processed = %d, want 1", report.Processed)
	}

	outPath := filepath.Join(out, "hero_recolor.png")
	img, err := imageio.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, A: 255}) {
		t.Errorf("pixel = %v, want recolored 200,0,0", got)
	}
}

func TestDiscoverLexicalOrder(t *testing.T) {
	in := t.TempDir()
	writeSprite(t, filepath.Join(in, "b.png"))
	writeSprite(t, filepath.Join(in, "a", "x.png"))
	writeSprite(t, filepath.Join(in, "c.png"))

	files, err := Discover(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(in, "a", "x.png"),
		filepath.Join(in, "b.png"),
		filepath.Join(in, "c.png"),
	}
	if len(files) != len(want) {
		t.Fatalf("discovered %d files, want %d", len(files), len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}
