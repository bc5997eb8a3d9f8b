// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image/color"

	"gioui.org/text"
	"gioui.org/widget/material"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme wraps the material.Theme with application-specific palette
// entries.
type Theme struct {
	*material.Theme

	// Surface is the background of chrome areas (sidebar, control
	// bar, login card).
	Surface color.NRGBA
	// Highlight marks the hovered channel row.
	Highlight color.NRGBA
	// Selection marks the selected channel row and the active
	// category.
	Selection color.NRGBA
	// FieldBorder outlines text fields.
	FieldBorder color.NRGBA
	// DangerColor is the color used to indicate errors.
	DangerColor color.NRGBA
	// MutedText is for secondary labels.
	MutedText color.NRGBA

	tints map[string]TintData
}

// TintData tracks both a color and its luminance.
type TintData struct {
	color.NRGBA
	Luminance float64
}

// NewTheme instantiates a theme using the provided fonts.
func NewTheme(fonts []text.FontFace) *Theme {
	return &Theme{
		Theme:       material.NewTheme(fonts),
		Surface:     color.NRGBA{R: 0xF2, G: 0xF3, B: 0xF5, A: 0xFF},
		Highlight:   color.NRGBA{A: 0x14},
		Selection:   color.NRGBA{R: 0x3F, G: 0x51, B: 0xB5, A: 0x30},
		FieldBorder: color.NRGBA{R: 0xC0, G: 0xC4, B: 0xCC, A: 0xFF},
		DangerColor: color.NRGBA{R: 200, A: 255},
		MutedText:   color.NRGBA{R: 0x6B, G: 0x6F, B: 0x76, A: 0xFF},
		tints:       make(map[string]TintData),
	}
}

// ToNRGBA converts a colorful.Color to the nearest representable color.NRGBA.
func ToNRGBA(c colorful.Color) color.NRGBA {
	r, g, b, a := c.RGBA()
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// Tint returns a stable accent color for a channel name, choosing a
// new one the first time the name appears. Placeholder tiles use it
// so a channel keeps its color while its icon loads (or never does).
func (t *Theme) Tint(name string) TintData {
	if c, ok := t.tints[name]; ok {
		return c
	}
	c := colorful.FastHappyColor().Clamped()

	td := TintData{
		NRGBA: ToNRGBA(c),
	}
	td.Luminance = (0.299*float64(td.NRGBA.R) + 0.587*float64(td.NRGBA.G) + 0.114*float64(td.NRGBA.B)) / 255
	t.tints[name] = td
	return td
}

// Contrast returns a text color readable over a tint of the given
// luminance.
func (t *Theme) Contrast(luminance float64) color.NRGBA {
	if luminance < .5 {
		return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return color.NRGBA{A: 0xDE}
}
