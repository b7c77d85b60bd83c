package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LogoText is the text drawn by the bouncing overlay.
const LogoText = "DVD"

// GlowOptions configures the halo drawn around the logo glyphs.
type GlowOptions struct {
	Radius   int
	Strength float64
}

// DefaultGlowOptions returns a soft halo that stays readable when the logo
// is scaled up.
func DefaultGlowOptions() GlowOptions {
	return GlowOptions{
		Radius:   2,
		Strength: 0.6,
	}
}

// LogoMask renders text into a coverage mask padded by the glow radius.
// Glyph pixels are fully opaque; the halo fades out with distance.
func LogoMask(text string, opts GlowOptions) *image.Gray {
	face := basicfont.Face7x13
	radius := max(opts.Radius, 0)
	strength := min(max(opts.Strength, 0), 1)

	d := font.Drawer{Face: face}
	width := d.MeasureString(text).Ceil()
	height := face.Metrics().Height.Ceil()
	if width <= 0 || height <= 0 {
		return image.NewGray(image.Rect(0, 0, 1, 1))
	}

	mask := image.NewGray(image.Rect(0, 0, width+2*radius, height+2*radius))
	d.Dst = mask
	d.Src = image.NewUniform(color.Gray{Y: 255})
	d.Dot = fixed.P(radius, radius+face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	if radius == 0 || strength == 0 {
		return mask
	}
	halo := blurGray(mask, radius)
	for i, v := range halo.Pix {
		glow := uint8(float64(v)*strength + 0.5)
		if glow > mask.Pix[i] {
			mask.Pix[i] = glow
		}
	}
	return mask
}

// TintMask colours a coverage mask. The mask scales the colour's alpha.
func TintMask(mask *image.Gray, c color.NRGBA) *image.NRGBA {
	b := mask.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.GrayAt(x, y).Y
			if a == 0 {
				continue
			}
			out.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(uint16(c.A) * uint16(a) / 255)})
		}
	}
	return out
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}
