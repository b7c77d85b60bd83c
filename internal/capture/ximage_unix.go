//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// zPixmap is the pixel data of a ZPixmap GetImage reply together with the
// layout needed to read it.
type zPixmap struct {
	data          []byte
	size          image.Point
	stride        int
	bytesPerPixel int
	// hasAlpha is false for depth 24, where the fourth byte is padding.
	hasAlpha bool
	// msbFirst means pixels are stored as A R G B rather than B G R A.
	msbFirst bool
}

func newZPixmap(setup *xproto.SetupInfo, reply *xproto.GetImageReply, size image.Point) (zPixmap, error) {
	switch {
	case setup == nil:
		return zPixmap{}, fmt.Errorf("xproto setup unavailable")
	case size.X <= 0 || size.Y <= 0:
		return zPixmap{}, fmt.Errorf("empty geometry %v", size)
	case reply == nil || len(reply.Data) == 0:
		return zPixmap{}, fmt.Errorf("no pixel data")
	}
	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == reply.Depth {
			bpp = int(f.BitsPerPixel)
			break
		}
	}
	if bpp != 24 && bpp != 32 {
		return zPixmap{}, fmt.Errorf("unsupported pixel format: depth %d, %d bpp", reply.Depth, bpp)
	}
	stride := len(reply.Data) / size.Y
	if stride*size.Y != len(reply.Data) || stride < size.X*bpp/8 {
		return zPixmap{}, fmt.Errorf("%d bytes do not hold %v pixels", len(reply.Data), size)
	}
	return zPixmap{
		data:          reply.Data,
		size:          size,
		stride:        stride,
		bytesPerPixel: bpp / 8,
		hasAlpha:      bpp == 32 && reply.Depth == 32,
		msbFirst:      setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
	}, nil
}

// drawInto copies the pixmap into dst with its top-left corner at at.
// Pixels falling outside dst are dropped.
func (p zPixmap) drawInto(dst *image.RGBA, at image.Point) {
	area := image.Rectangle{Min: at, Max: at.Add(p.size)}.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := p.data[(y-at.Y)*p.stride:]
		for x := area.Min.X; x < area.Max.X; x++ {
			px := row[(x-at.X)*p.bytesPerPixel:]
			var r, g, b, a byte
			if p.msbFirst {
				// 24 bpp has no alpha byte in front.
				if p.bytesPerPixel == 4 {
					a, px = px[0], px[1:]
				}
				r, g, b = px[0], px[1], px[2]
			} else {
				b, g, r = px[0], px[1], px[2]
				if p.bytesPerPixel == 4 {
					a = px[3]
				}
			}
			if !p.hasAlpha {
				a = 0xff
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, b, a
		}
	}
}

// rgba converts the pixmap into a new image at the origin.
func (p zPixmap) rgba() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: p.size})
	p.drawInto(img, image.Point{})
	return img
}
