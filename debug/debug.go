/*
Package debug provides tools for debugging layout code.
*/
package debug

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Outline traces a thin black border around a widget, marking its
// true bounds.
func Outline(gtx C, w func(gtx C) D) D {
	return widget.Border{
		Color: color.NRGBA{A: 255},
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}

// OutlineColored is Outline with a caller-chosen color. Giving each
// render slot a stable color makes slot recycling visible while
// scrolling.
func OutlineColored(gtx C, col color.NRGBA, w func(gtx C) D) D {
	return widget.Border{
		Color: col,
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}
