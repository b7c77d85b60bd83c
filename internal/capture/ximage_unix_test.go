//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func testSetup(order byte) *xproto.SetupInfo {
	return &xproto.SetupInfo{
		ImageByteOrder: order,
		PixmapFormats: []xproto.Format{
			{Depth: 24, BitsPerPixel: 32},
			{Depth: 32, BitsPerPixel: 32},
			{Depth: 8, BitsPerPixel: 8},
		},
	}
}

func TestZPixmapDepth24IsOpaque(t *testing.T) {
	// 2x1 pixels, BGRX with a zero padding byte.
	reply := &xproto.GetImageReply{Depth: 24, Data: []byte{
		0x30, 0x20, 0x10, 0x00,
		0x03, 0x02, 0x01, 0x00,
	}}
	pm, err := newZPixmap(testSetup(xproto.ImageOrderLSBFirst), reply, image.Pt(2, 1))
	if err != nil {
		t.Fatalf("newZPixmap: %v", err)
	}
	img := pm.rgba()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Fatalf("pixel 0 = %+v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0x01, 0x02, 0x03, 0xff}) {
		t.Fatalf("pixel 1 = %+v", got)
	}
}

func TestZPixmapMSBFirstWithAlpha(t *testing.T) {
	reply := &xproto.GetImageReply{Depth: 32, Data: []byte{0x80, 0x10, 0x20, 0x30}}
	pm, err := newZPixmap(testSetup(xproto.ImageOrderMSBFirst), reply, image.Pt(1, 1))
	if err != nil {
		t.Fatalf("newZPixmap: %v", err)
	}
	if got := pm.rgba().RGBAAt(0, 0); got != (color.RGBA{0x10, 0x20, 0x30, 0x80}) {
		t.Fatalf("pixel = %+v", got)
	}
}

func TestZPixmapDrawIntoOffset(t *testing.T) {
	// 2x2 pixels with a stride padded to 12 bytes.
	data := make([]byte, 24)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			copy(data[i*12+j*4:], []byte{0xff, 0x00, 0x00, 0x00})
		}
	}
	pm, err := newZPixmap(testSetup(xproto.ImageOrderLSBFirst), &xproto.GetImageReply{Depth: 24, Data: data}, image.Pt(2, 2))
	if err != nil {
		t.Fatalf("newZPixmap: %v", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))
	pm.drawInto(dst, image.Pt(2, 1))
	blue := color.RGBA{0, 0, 0xff, 0xff}
	if got := dst.RGBAAt(2, 1); got != blue {
		t.Fatalf("placed pixel = %+v", got)
	}
	if got := dst.RGBAAt(2, 2); got != blue {
		t.Fatalf("second row = %+v", got)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Fatalf("pixel left of the pixmap was written: %+v", got)
	}
}

func TestZPixmapRejectsBadReplies(t *testing.T) {
	setup := testSetup(xproto.ImageOrderLSBFirst)
	for name, tc := range map[string]struct {
		setup *xproto.SetupInfo
		reply *xproto.GetImageReply
		size  image.Point
	}{
		"no setup":      {nil, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 4)}, image.Pt(1, 1)},
		"empty size":    {setup, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 4)}, image.Pt(0, 1)},
		"no data":       {setup, &xproto.GetImageReply{Depth: 24}, image.Pt(1, 1)},
		"8 bpp":         {setup, &xproto.GetImageReply{Depth: 8, Data: make([]byte, 4)}, image.Pt(4, 1)},
		"short rows":    {setup, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 8)}, image.Pt(4, 1)},
		"ragged rows":   {setup, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 9)}, image.Pt(1, 2)},
		"unknown depth": {setup, &xproto.GetImageReply{Depth: 16, Data: make([]byte, 4)}, image.Pt(1, 1)},
	} {
		if _, err := newZPixmap(tc.setup, tc.reply, tc.size); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
