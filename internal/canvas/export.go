package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// EncodePNG writes the image as lossless PNG. Given the same image the
// output is byte-identical across calls.
func EncodePNG(w io.Writer, img *image.RGBA) error {
	return png.Encode(w, img)
}

// WritePNG exports the image to path, failing loudly when the target cannot
// be created; a render has no meaningful fallback output.
func WritePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := EncodePNG(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// DrawLabel renders one line of HUD text onto the image at (x, y), the top
// left corner of the line.
func DrawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

// LabelHeight is the vertical advance between stacked HUD lines.
const LabelHeight = 13
