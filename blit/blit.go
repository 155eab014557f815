// Package blit renders a finished layout to RGBA page bitmaps, as the
// optional thin blitter spec §6 requires. It is the only place in the
// module that imports an image-compositing library, so callers using only
// the layout-only entry points never pay for it.
package blit

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gridforge/atlaspack"
)

// Config controls how RenderPages fills unused page area.
type Config struct {
	// Background fills every page before any frame is drawn. The zero
	// value leaves pages fully transparent.
	Background color.RGBA
}

// RenderPages composites every frame of atlas onto its page, using source
// pixels keyed by InputItem.Key. A frame whose key is missing from
// sources fails the whole render, since a partially composited atlas is
// not a useful result to a caller.
func RenderPages(atlas atlaspack.Atlas, sources map[string]image.Image, cfg Config) ([]*image.RGBA, error) {
	pages := make([]*image.RGBA, len(atlas.Pages))

	for i, page := range atlas.Pages {
		dst := image.NewRGBA(image.Rect(0, 0, page.Width, page.Height))
		if (cfg.Background != color.RGBA{}) {
			draw.Draw(dst, dst.Bounds(), &image.Uniform{C: cfg.Background}, image.Point{}, draw.Src)
		}

		for _, frame := range page.Frames {
			src, ok := sources[frame.Key]
			if !ok {
				return nil, fmt.Errorf("blit: no source pixels for key %q", frame.Key)
			}
			if err := blitFrame(dst, src, frame); err != nil {
				return nil, fmt.Errorf("blit: key %q: %w", frame.Key, err)
			}
		}

		pages[i] = dst
	}

	return pages, nil
}

func blitFrame(dst *image.RGBA, src image.Image, frame atlaspack.PlacedFrame) error {
	srcRect := image.Rect(
		frame.Source.X, frame.Source.Y,
		frame.Source.X+frame.Source.Width, frame.Source.Y+frame.Source.Height,
	).Add(src.Bounds().Min)

	dstRect := image.Rect(
		frame.Frame.X, frame.Frame.Y,
		frame.Frame.X+frame.Frame.Width, frame.Frame.Y+frame.Frame.Height,
	)

	if srcRect.Dx() <= 0 || srcRect.Dy() <= 0 {
		return fmt.Errorf("empty source rect %v", srcRect)
	}

	if frame.Rotated {
		draw.NearestNeighbor.Transform(dst, rotateClockwise90(srcRect, dstRect), src, srcRect, draw.Over, nil)
	} else {
		draw.Draw(dst, dstRect, src, srcRect.Min, draw.Over)
	}

	extrude(dst, dstRect, frame.Extrusion)
	return nil
}

// rotateClockwise90 returns the source-to-destination affine matrix that
// Transform expects, mapping srcRect onto dstRect under a 90-degree
// clockwise rotation of the source content, matching the "rotated means
// content is rotated 90 degrees clockwise at blit time" semantics of §4.1.
// golang.org/x/image's affine Transform is used here because stdlib
// image/draw has no rotation capability.
func rotateClockwise90(srcRect, dstRect image.Rectangle) f64.Aff3 {
	return f64.Aff3{
		0, -1, float64(dstRect.Min.X + srcRect.Max.Y),
		1, 0, float64(dstRect.Min.Y - srcRect.Min.X),
	}
}

// extrude replicates the edge pixels of frame outward by extrusion pixels
// on every side, clipped to dst's bounds, per §4.1's "replicate edge
// pixels inside the slot to prevent bilinear bleed" behavior.
func extrude(dst *image.RGBA, frame image.Rectangle, extrusion int) {
	if extrusion <= 0 {
		return
	}
	b := dst.Bounds()

	for i := 1; i <= extrusion; i++ {
		if x := frame.Min.X - i; x >= b.Min.X {
			copyColumn(dst, x, frame.Min.X, frame.Min.Y, frame.Max.Y)
		}
		if x := frame.Max.X - 1 + i; x < b.Max.X {
			copyColumn(dst, x, frame.Max.X-1, frame.Min.Y, frame.Max.Y)
		}
	}
	for i := 1; i <= extrusion; i++ {
		if y := frame.Min.Y - i; y >= b.Min.Y {
			copyRow(dst, y, frame.Min.Y, frame.Min.X, frame.Max.X)
		}
		if y := frame.Max.Y - 1 + i; y < b.Max.Y {
			copyRow(dst, y, frame.Max.Y-1, frame.Min.X, frame.Max.X)
		}
	}
	for dy := 1; dy <= extrusion; dy++ {
		for dx := 1; dx <= extrusion; dx++ {
			setIfIn(dst, frame.Min.X-dx, frame.Min.Y-dy, dst.RGBAAt(frame.Min.X, frame.Min.Y))
			setIfIn(dst, frame.Max.X-1+dx, frame.Min.Y-dy, dst.RGBAAt(frame.Max.X-1, frame.Min.Y))
			setIfIn(dst, frame.Min.X-dx, frame.Max.Y-1+dy, dst.RGBAAt(frame.Min.X, frame.Max.Y-1))
			setIfIn(dst, frame.Max.X-1+dx, frame.Max.Y-1+dy, dst.RGBAAt(frame.Max.X-1, frame.Max.Y-1))
		}
	}
}

func copyColumn(dst *image.RGBA, toX, fromX, y0, y1 int) {
	for y := y0; y < y1; y++ {
		setIfIn(dst, toX, y, dst.RGBAAt(fromX, y))
	}
}

func copyRow(dst *image.RGBA, toY, fromY, x0, x1 int) {
	for x := x0; x < x1; x++ {
		setIfIn(dst, x, toY, dst.RGBAAt(x, fromY))
	}
}

func setIfIn(dst *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(dst.Bounds()) {
		dst.SetRGBA(x, y, c)
	}
}

// vim: ts=4
