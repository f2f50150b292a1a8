package geom

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// fill creates a w×h buffer painted a single color.
func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// colorSet collects the distinct pixel values of img.
func colorSet(img *image.NRGBA) map[color.NRGBA]bool {
	set := make(map[color.NRGBA]bool)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			set[img.NRGBAAt(x, y)] = true
		}
	}
	return set
}

var transparent = color.NRGBA{}

func TestExtractRow(t *testing.T) {
	// 4 rows of 2px height, each a distinct color.
	rowColors := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	sheet := image.NewNRGBA(image.Rect(0, 0, 4, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			sheet.SetNRGBA(x, y, rowColors[y/2])
		}
	}

	for i, want := range rowColors {
		row, err := ExtractRow(sheet, i)
		if err != nil {
			t.Fatalf("ExtractRow(%d): %v", i, err)
		}
		if row.Bounds().Dx() != 4 || row.Bounds().Dy() != 2 {
			t.Fatalf("row %d dims = %v, want 4x2", i, row.Bounds())
		}
		if got := row.NRGBAAt(0, 0); got != want {
			t.Errorf("row %d color = %v, want %v", i, got, want)
		}
	}
}

func TestExtractRowOutOfRange(t *testing.T) {
	sheet := fill(4, 8, color.NRGBA{A: 255})
	for _, i := range []int{-1, 4, 100} {
		if _, err := ExtractRow(sheet, i); err == nil {
			t.Errorf("ExtractRow(%d) should fail", i)
		}
	}
}

func TestExtractRowDoesNotAliasSource(t *testing.T) {
	sheet := fill(4, 8, color.NRGBA{R: 10, A: 255})
	row, err := ExtractRow(sheet, 0)
	if err != nil {
		t.Fatal(err)
	}
	sheet.SetNRGBA(0, 0, color.NRGBA{R: 99, A: 255})
	if row.NRGBAAt(0, 0).R != 10 {
		t.Error("extracted row should be a copy, not a view")
	}
}

func TestCropFrame(t *testing.T) {
	row := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	// Second frame gets a marker pixel.
	row.SetNRGBA(5, 1, color.NRGBA{R: 42, A: 255})

	frame, err := CropFrame(row, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Bounds().Dx() != 4 || frame.Bounds().Dy() != 4 {
		t.Fatalf("frame dims = %v, want 4x4", frame.Bounds())
	}
	if got := frame.NRGBAAt(1, 1); got.R != 42 {
		t.Errorf("marker pixel = %v, want R=42", got)
	}

	if _, err := CropFrame(row, 2, 4); err == nil {
		t.Error("frame past row end should fail")
	}
	if _, err := CropFrame(row, -1, 4); err == nil {
		t.Error("negative frame index should fail")
	}
}

func TestSquashFloorWidth(t *testing.T) {
	img := fill(10, 4, color.NRGBA{R: 1, A: 255})
	out, err := Squash(img, 0.85)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds().Dx() != 8 { // floor(10*0.85)
		t.Errorf("width = %d, want 8", out.Bounds().Dx())
	}
	if out.Bounds().Dy() != 4 {
		t.Errorf("height = %d, want 4 (unchanged)", out.Bounds().Dy())
	}
}

func TestSquashFactorValidation(t *testing.T) {
	img := fill(4, 4, color.NRGBA{A: 255})
	for _, f := range []float64{0, -0.5, 1.01} {
		if _, err := Squash(img, f); err == nil {
			t.Errorf("Squash(factor=%g) should fail", f)
		}
	}
}

func TestSquashFactorOneIsNoOp(t *testing.T) {
	img := fill(6, 3, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	out, err := Squash(img, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Error("factor 1 should reproduce the input exactly")
	}
}

func TestSquashIdempotentUnderFloorRule(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 17, 5))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 31)
	}

	once, err := Squash(img, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Squash(once, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(once.Pix, again.Pix) {
		t.Error("Squash(Squash(x, f), 1) should equal Squash(x, f)")
	}
}

func TestSquashIntroducesNoNewColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	palette := []color.NRGBA{
		{R: 200, G: 10, B: 10, A: 255},
		{R: 10, G: 200, B: 10, A: 255},
		{R: 10, G: 10, B: 200, A: 128},
		{},
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, palette[(x+y)%len(palette)])
		}
	}

	out, err := Squash(img, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	srcColors := colorSet(img)
	for c := range colorSet(out) {
		if !srcColors[c] {
			t.Errorf("squash invented color %v", c)
		}
	}
}

func TestShearZeroIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	out := Shear(img, ShearOpts{Horizontal: 0, EastLeaning: true})
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Error("zero shear should reproduce the input exactly")
	}
}

func TestShearPreservesDimensions(t *testing.T) {
	img := fill(10, 6, color.NRGBA{R: 5, A: 255})
	out := Shear(img, ShearOpts{Horizontal: 0.3, EastLeaning: true})
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 6 {
		t.Errorf("dims = %v, want 10x6", out.Bounds())
	}
}

func TestShearEastSamplesRightward(t *testing.T) {
	// A single opaque column at x=4. East-leaning inverse mapping samples
	// src(x + h*y), so at deeper y the column appears further left.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		img.SetNRGBA(4, y, color.NRGBA{R: 200, A: 255})
	}
	out := Shear(img, ShearOpts{Horizontal: 0.5, EastLeaning: true})

	// y=0: src x = x, column stays at 4.
	if out.NRGBAAt(4, 0).A == 0 {
		t.Error("row 0 should keep the column at x=4")
	}
	// y=4: src x = x+2, so the column lands at x=2.
	if out.NRGBAAt(2, 4).A == 0 {
		t.Error("row 4 should shift the column to x=2")
	}
	if out.NRGBAAt(4, 4).A != 0 {
		t.Error("row 4 should no longer have the column at x=4")
	}
}

func TestShearWestCompensatingTranslation(t *testing.T) {
	// West shear negates the horizontal term and translates by width*h,
	// keeping content on canvas: at y=0, src x = x + w*h.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		img.SetNRGBA(4, y, color.NRGBA{G: 200, A: 255})
	}
	out := Shear(img, ShearOpts{Horizontal: 0.5, EastLeaning: false})

	// y=0: src x = x + 4 → column lands at x=0.
	if out.NRGBAAt(0, 0).A == 0 {
		t.Error("row 0 should shift the column to x=0")
	}
	// y=8 would bring it back; at y=4, src x = x - 2 + 4 → lands at x=2.
	if out.NRGBAAt(2, 4).A == 0 {
		t.Error("row 4 should place the column at x=2")
	}
}

func TestShearOutOfBoundsIsTransparent(t *testing.T) {
	img := fill(8, 8, color.NRGBA{R: 99, A: 255})
	out := Shear(img, ShearOpts{Horizontal: 0.5, EastLeaning: true})

	// Bottom-right region samples past the source width.
	if got := out.NRGBAAt(7, 7); got != transparent {
		t.Errorf("out-of-bounds sample = %v, want fully transparent", got)
	}
}

func TestShearIntroducesNoNewColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), A: 255})
		}
	}
	out := Shear(img, ShearOpts{Horizontal: 0.25, Vertical: 0.1, EastLeaning: true, Up: true})

	srcColors := colorSet(img)
	srcColors[transparent] = true // fill color is always permitted
	for c := range colorSet(out) {
		if !srcColors[c] {
			t.Errorf("shear invented color %v", c)
		}
	}
}

func TestShearVerticalSkewDownVsUp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		img.SetNRGBA(x, 5, color.NRGBA{B: 150, A: 255})
	}

	down := Shear(img, ShearOpts{Vertical: 0.3, EastLeaning: true, Up: false})
	up := Shear(img, ShearOpts{Vertical: 0.3, EastLeaning: true, Up: true})

	// Down diagonals have no compensating translation: at x=0 the stripe
	// stays at y=5.
	if down.NRGBAAt(0, 5).A == 0 {
		t.Error("down skew should keep the stripe at y=5 for x=0")
	}
	// Up diagonals add the height*v translation, shifting samples.
	if bytes.Equal(up.Pix, down.Pix) {
		t.Error("up and down skews should differ")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := fill(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	b := fill(4, 4, color.NRGBA{R: 250, G: 240, B: 230, A: 220})

	pure, err := Blend(a, b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pure.Pix, b.Pix) {
		t.Error("ratio 1 should be pixel-identical to primary")
	}

	pure, err = Blend(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pure.Pix, a.Pix) {
		t.Error("ratio 0 should be pixel-identical to secondary")
	}
}

func TestBlendMidpoint(t *testing.T) {
	a := fill(2, 2, color.NRGBA{R: 100, G: 0, B: 50, A: 0})
	b := fill(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	out, err := Blend(a, b, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	got := out.NRGBAAt(0, 0)
	want := color.NRGBA{R: 150, G: 50, B: 50, A: 128} // round(127.5) = 128
	if got != want {
		t.Errorf("midpoint blend = %v, want %v", got, want)
	}
}

func TestBlendDimensionMismatch(t *testing.T) {
	a := fill(4, 4, color.NRGBA{A: 255})
	b := fill(5, 4, color.NRGBA{A: 255})
	if _, err := Blend(a, b, 0.5); err == nil {
		t.Error("dimension mismatch should fail")
	}
}

func TestBlendRatioValidation(t *testing.T) {
	a := fill(2, 2, color.NRGBA{A: 255})
	for _, r := range []float64{-0.1, 1.1} {
		if _, err := Blend(a, a, r); err == nil {
			t.Errorf("Blend(ratio=%g) should fail", r)
		}
	}
}

func TestCenterOnCanvas(t *testing.T) {
	frame := fill(4, 6, color.NRGBA{R: 77, A: 255})
	canvas, err := CenterOnCanvas(frame, 8)
	if err != nil {
		t.Fatal(err)
	}
	if canvas.Bounds().Dx() != 8 || canvas.Bounds().Dy() != 8 {
		t.Fatalf("canvas dims = %v, want 8x8", canvas.Bounds())
	}

	// x offset = (8-4)/2 = 2; flush with top.
	if canvas.NRGBAAt(2, 0).R != 77 {
		t.Error("frame should start at x=2, y=0")
	}
	if canvas.NRGBAAt(1, 0) != transparent {
		t.Error("padding left of the frame should be transparent")
	}
	if canvas.NRGBAAt(2, 6) != transparent {
		t.Error("area below the frame should be transparent")
	}
}

func TestCenterOnCanvasTransparentFrameLeavesCanvasUntouched(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 4, 4)) // fully transparent
	canvas, err := CenterOnCanvas(frame, 8)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range canvas.Pix {
		if p != 0 {
			t.Fatal("transparent frame should leave the canvas fully transparent")
		}
	}
}

func TestCenterOnCanvasTooLarge(t *testing.T) {
	frame := fill(10, 4, color.NRGBA{A: 255})
	if _, err := CenterOnCanvas(frame, 8); err == nil {
		t.Error("oversized frame should fail")
	}
}

func TestPasteAtAlphaMask(t *testing.T) {
	dst := fill(8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})

	PasteAt(dst, src, 2, 2)

	if got := dst.NRGBAAt(2, 2); got.R != 200 {
		t.Errorf("opaque source pixel should overwrite, got %v", got)
	}
	// Transparent source pixels leave the destination alone.
	if got := dst.NRGBAAt(3, 3); got.R != 1 || got.A != 255 {
		t.Errorf("transparent source pixel should not overwrite, got %v", got)
	}
}
