// Package widget provides the stateful UI primitives shared by the
// player's screens.
package widget

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/paint"
	gwidget "gioui.org/widget"
)

// Icon holds a render slot's decoded icon and caches the image
// operation for it. Setting a new image is cheap; the operation is
// baked lazily on first use and re-baked only when the image changes.
type Icon struct {
	src   image.Image
	op    paint.ImageOp
	baked bool
}

// Set replaces the icon's image. A nil image is ignored.
func (ic *Icon) Set(img image.Image) {
	if img == nil {
		return
	}
	ic.src = img
	ic.baked = false
}

// Ready reports whether an image has been set.
func (ic *Icon) Ready() bool {
	return ic.src != nil
}

// Reset drops the image so the holder can be reused.
func (ic *Icon) Reset() {
	*ic = Icon{}
}

// Op returns the image operation, baking it if the image changed.
func (ic *Icon) Op() paint.ImageOp {
	if !ic.baked && ic.src != nil {
		ic.op = paint.NewImageOp(ic.src)
		ic.baked = true
	}
	return ic.op
}

// Layout draws the icon scaled to fit the constraints, centered,
// preserving aspect ratio.
func (ic *Icon) Layout(gtx layout.Context) layout.Dimensions {
	if !ic.Ready() {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	return gwidget.Image{
		Src:      ic.Op(),
		Fit:      gwidget.Contain,
		Position: layout.Center,
	}.Layout(gtx)
}
