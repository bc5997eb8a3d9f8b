// Package layout provides the small composable surfaces the player's
// screens are assembled from.
package layout

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/x/component"
)

// Background lays out a widget over a solid fill sized to the widget.
// Used for row hover and selection highlights.
type Background color.NRGBA

func (bg Background) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return layout.Stack{}.Layout(
		gtx,
		layout.Expanded(component.Rect{
			Size:  dims.Size,
			Color: color.NRGBA(bg),
		}.Layout),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			call.Add(gtx.Ops)
			return dims
		}),
	)
}

// Rounded clips a widget to uniformly rounded corners.
type Rounded unit.Value

func (r Rounded) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	radii := float32(gtx.Px(unit.Value(r)))
	defer clip.RRect{
		Rect: layout.FRect(image.Rectangle{Max: dims.Size}),
		NE:   radii,
		NW:   radii,
		SW:   radii,
		SE:   radii,
	}.Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
	return dims
}

// Panel is a rounded surface with a fill and an inner inset: the
// building block for cards, icon tiles, and banners.
type Panel struct {
	Color  color.NRGBA
	Radius unit.Value
	Inset  layout.Inset
}

func (p Panel) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	return Rounded(p.Radius).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return Background(p.Color).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return p.Inset.Layout(gtx, w)
		})
	})
}
