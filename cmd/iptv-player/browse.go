// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"github.com/VodenoFF/IPTV-Player/debug"
	applayout "github.com/VodenoFF/IPTV-Player/layout"
	"github.com/VodenoFF/IPTV-Player/list"
	"github.com/VodenoFF/IPTV-Player/store"
	"github.com/VodenoFF/IPTV-Player/xtream"
)

var (
	// SidebarMaxWidth specifies how wide the category sidebar should
	// be on desktop layouts.
	SidebarMaxWidth = unit.Dp(250)
	// IconBox is the square reserved for a channel logo in the list.
	IconBox = unit.Dp(40)
)

// provider turns a stream id into a playable URL. The Xtream client
// implements it for real panels; demo mode substitutes its own.
type provider interface {
	StreamURL(id xtream.FlexInt) string
}

// categoryEntry pairs a category with its click state and the number
// of channels filed under it.
type categoryEntry struct {
	xtream.Category
	count int
	click widget.Clickable
}

// BrowseScreen is the main screen: categories down the left, a
// virtualized channel list filling the rest, and a playback control
// strip along the bottom.
type BrowseScreen struct {
	ui *UI

	source  provider
	catalog *xtream.Catalog

	categories []categoryEntry
	catList    widget.List
	activeCat  int

	view    *list.View
	streams []xtream.Stream

	playPause widget.Clickable
	stop      widget.Clickable
	prev      widget.Clickable
	next      widget.Clickable
	mute      widget.Clickable
	volume    widget.Float
	// savedVolume is the last value persisted to settings, so dragging
	// the slider writes the file once on release rather than per frame.
	savedVolume int

	playing    string
	playingIdx int
	paused     bool
	muted      bool
	status     string
}

// NewBrowseScreen builds the browse screen around the shared caches
// and loader owned by the UI.
func NewBrowseScreen(ui *UI, settings store.Settings) *BrowseScreen {
	s := &BrowseScreen{
		ui:         ui,
		activeCat:  -1,
		playingIdx: -1,
	}
	s.view = list.NewView(list.Hooks{
		Present: s.presentRow,
		Select: func(index int, item list.Item) {
			s.play(index)
		},
		Request: ui.loader.Request,
		Lookup:  ui.icons.Get,
	})
	s.view.Buffer = bufferRows
	s.volume.Value = float32(settings.Volume)
	s.savedVolume = settings.Volume
	return s
}

// ShowCatalog replaces the entire catalog, typically right after
// sign-in. Playback is left alone but the playing marker is dropped
// because its index belongs to the old sequence.
func (s *BrowseScreen) ShowCatalog(source provider, catalog *xtream.Catalog) {
	s.source = source
	s.catalog = catalog
	s.categories = make([]categoryEntry, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		s.categories = append(s.categories, categoryEntry{
			Category: cat,
			count:    len(catalog.Streams(string(cat.ID))),
		})
	}
	s.activeCat = -1
	s.playingIdx = -1
	s.status = ""
	if len(s.categories) == 0 {
		s.streams = nil
		s.view.SetItems(nil)
		s.status = "The panel returned no channels."
		return
	}
	s.selectCategory(0)
}

// selectCategory switches the channel list to another category.
func (s *BrowseScreen) selectCategory(index int) {
	if index < 0 || index >= len(s.categories) || index == s.activeCat {
		return
	}
	s.activeCat = index
	s.playingIdx = -1
	s.streams = s.catalog.Streams(string(s.categories[index].ID))
	items := make([]list.Item, len(s.streams))
	for i, stream := range s.streams {
		items[i] = list.Item{
			ID:   strconv.Itoa(int(stream.ID)),
			Name: stream.Name,
			Icon: stream.Icon,
		}
	}
	s.view.SetItems(items)
}

// play starts the channel at index on the video backend.
func (s *BrowseScreen) play(index int) {
	if index < 0 || index >= len(s.streams) {
		return
	}
	stream := s.streams[index]
	url := s.source.StreamURL(stream.ID)
	if err := s.ui.engine.Play(url, stream.Name); err != nil {
		s.status = "Playback failed: " + err.Error()
		return
	}
	s.playing = stream.Name
	s.playingIdx = index
	s.paused = false
	s.status = ""
}

// step moves playback to an adjacent channel, wrapping at either end
// of the current category.
func (s *BrowseScreen) step(delta int) {
	n := s.view.Len()
	if n == 0 {
		return
	}
	base, _, ok := s.view.Selected()
	if s.playingIdx >= 0 {
		base, ok = s.playingIdx, true
	}
	if !ok {
		s.view.SetSelected(0)
		s.play(0)
		return
	}
	index := (base + delta + n) % n
	s.view.SetSelected(index)
	s.play(index)
}

// handleControls processes everything clickable outside the channel
// list itself.
func (s *BrowseScreen) handleControls() {
	for i := range s.categories {
		if s.categories[i].click.Clicked() {
			s.selectCategory(i)
		}
	}
	if s.playPause.Clicked() {
		switch {
		case s.playingIdx < 0 && s.playing == "":
			if index, _, ok := s.view.Selected(); ok {
				s.play(index)
			}
		default:
			s.paused = !s.paused
			if err := s.ui.engine.SetPause(s.paused); err != nil {
				log.Printf("playback: %v", err)
			}
		}
	}
	if s.stop.Clicked() {
		if err := s.ui.engine.Stop(); err != nil {
			log.Printf("playback: %v", err)
		}
		s.playing = ""
		s.playingIdx = -1
		s.paused = false
	}
	if s.prev.Clicked() {
		s.step(-1)
	}
	if s.next.Clicked() {
		s.step(1)
	}
	if s.mute.Clicked() {
		s.muted = !s.muted
		if err := s.ui.engine.SetMute(s.muted); err != nil {
			log.Printf("playback: %v", err)
		}
	}
	if s.volume.Changed() {
		if err := s.ui.engine.SetVolume(int(s.volume.Value)); err != nil {
			log.Printf("playback: %v", err)
		}
	}
	if vol := int(s.volume.Value); !s.volume.Dragging() && vol != s.savedVolume {
		s.savedVolume = vol
		if err := s.ui.store.SaveSettings(store.Settings{Volume: vol}); err != nil {
			log.Printf("settings: %v", err)
		}
	}
}

// Layout the browse screen.
func (s *BrowseScreen) Layout(gtx C) D {
	s.handleControls()
	paint.Fill(gtx.Ops, th.Bg)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(s.layoutSidebar),
				layout.Flexed(1, s.layoutChannels),
			)
		}),
		layout.Rigid(s.layoutControls),
	)
}

// layoutSidebar lays out the category list down the left edge.
func (s *BrowseScreen) layoutSidebar(gtx C) D {
	gtx.Constraints.Max.X = gtx.Px(SidebarMaxWidth)
	gtx.Constraints.Min = gtx.Constraints.Max
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			return component.Rect{
				Size:  gtx.Constraints.Max,
				Color: th.Surface,
			}.Layout(gtx)
		}),
		layout.Stacked(func(gtx C) D {
			s.catList.Axis = layout.Vertical
			gtx.Constraints.Min = gtx.Constraints.Max
			return material.List(th.Theme, &s.catList).Layout(gtx, len(s.categories), s.layoutCategory)
		}),
	)
}

// layoutCategory lays out one category row, with an indicator bar
// when it is the active one.
func (s *BrowseScreen) layoutCategory(gtx C, index int) D {
	entry := &s.categories[index]
	var (
		surface = func(gtx C, w layout.Widget) D { return w(gtx) }
		dims    D
	)
	if index == s.activeCat {
		surface = applayout.Background(th.Selection).Layout
		defer func() {
			component.Rect{
				Size: image.Point{
					X: gtx.Px(unit.Dp(3)),
					Y: dims.Size.Y,
				},
				Color: th.Theme.ContrastBg,
			}.Layout(gtx)
		}()
	}
	dims = surface(gtx, func(gtx C) D {
		return material.Clickable(gtx, &entry.click, func(gtx C) D {
			return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return layout.Flex{
					Axis:      layout.Horizontal,
					Alignment: layout.Middle,
				}.Layout(gtx,
					layout.Flexed(1, func(gtx C) D {
						name := material.Body1(th.Theme, entry.Name)
						if index == s.activeCat {
							name.Font.Weight = text.Bold
						}
						return component.TruncatingLabelStyle(name).Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(5)}.Layout),
					layout.Rigid(func(gtx C) D {
						count := material.Label(th.Theme, unit.Sp(12), strconv.Itoa(entry.count))
						count.Color = th.MutedText
						return count.Layout(gtx)
					}),
				)
			})
		})
	})
	return dims
}

// layoutChannels lays out the virtualized channel list.
func (s *BrowseScreen) layoutChannels(gtx C) D {
	gtx.Constraints.Min = gtx.Constraints.Max
	if s.view.Len() == 0 {
		return layout.Center.Layout(gtx, func(gtx C) D {
			msg := s.status
			if msg == "" {
				msg = "No channels in this category."
			}
			label := material.Body1(th.Theme, msg)
			label.Color = th.MutedText
			return label.Layout(gtx)
		})
	}
	return s.view.Layout(gtx)
}

// presentRow draws the content of one channel row. The view owns
// position and clipping; hover and selection state come back out of
// it so recycled rows always show the right emphasis.
func (s *BrowseScreen) presentRow(gtx C, index int, slot *list.Slot) {
	inner := func(gtx C) D {
		return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx C) D {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return s.layoutRowIcon(gtx, slot)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
				layout.Flexed(1, func(gtx C) D {
					name := material.Body1(th.Theme, slot.Item.Name)
					return component.TruncatingLabelStyle(name).Layout(gtx)
				}),
				layout.Rigid(func(gtx C) D {
					if index != s.playingIdx {
						return D{}
					}
					sz := gtx.Px(unit.Dp(18))
					gtx.Constraints.Min = image.Pt(sz, sz)
					return VolumeIcon.Layout(gtx, th.Theme.ContrastBg)
				}),
			)
		})
	}
	row := inner
	if debugMode {
		// Key the outline color on the slot itself, not the row, so
		// recycling is visible: a reused slot keeps its color as it
		// rebinds to new rows.
		row = func(gtx C) D {
			tint := th.Tint(fmt.Sprintf("slot %p", slot))
			return debug.OutlineColored(gtx, tint.NRGBA, inner)
		}
	}
	switch {
	case s.view.IsSelected(index):
		applayout.Background(th.Selection).Layout(gtx, row)
	case s.view.IsHovered(index):
		applayout.Background(th.Highlight).Layout(gtx, row)
	default:
		row(gtx)
	}
}

// layoutRowIcon shows the channel logo once it has loaded, and a
// tinted monogram tile before that and for channels without one.
func (s *BrowseScreen) layoutRowIcon(gtx C, slot *list.Slot) D {
	sz := gtx.Px(IconBox)
	gtx.Constraints = layout.Exact(image.Pt(sz, sz))
	if slot.Icon.Ready() {
		return applayout.Rounded(unit.Dp(6)).Layout(gtx, slot.Icon.Layout)
	}
	tint := th.Tint(slot.Item.Name)
	return applayout.Panel{
		Color:  tint.NRGBA,
		Radius: unit.Dp(6),
	}.Layout(gtx, func(gtx C) D {
		return layout.Center.Layout(gtx, func(gtx C) D {
			label := material.H6(th.Theme, initial(slot.Item.Name))
			label.Color = th.Contrast(tint.Luminance)
			return label.Layout(gtx)
		})
	})
}

// initial picks the monogram letter for a channel without a logo.
func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "TV"
}

// layoutControls lays out the playback strip along the bottom.
func (s *BrowseScreen) layoutControls(gtx C) D {
	return applayout.Background(th.Surface).Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(s.iconButton(&s.prev, PrevIcon)),
				layout.Rigid(func(gtx C) D {
					icon := PauseIcon
					if s.playing == "" || s.paused {
						icon = PlayIcon
					}
					return s.iconButton(&s.playPause, icon)(gtx)
				}),
				layout.Rigid(s.iconButton(&s.stop, StopIcon)),
				layout.Rigid(s.iconButton(&s.next, NextIcon)),
				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
				layout.Flexed(1, s.layoutStatus),
				layout.Rigid(func(gtx C) D {
					icon := VolumeIcon
					if s.muted {
						icon = MuteIcon
					}
					return s.iconButton(&s.mute, icon)(gtx)
				}),
				layout.Rigid(func(gtx C) D {
					gtx.Constraints.Min.X = gtx.Px(unit.Dp(160))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return material.Slider(th.Theme, &s.volume, 0, 100).Layout(gtx)
				}),
			)
		})
	})
}

// layoutStatus shows the playback error if there is one, otherwise
// what is playing, otherwise the size of the current category.
func (s *BrowseScreen) layoutStatus(gtx C) D {
	var label material.LabelStyle
	switch {
	case s.status != "":
		label = material.Body2(th.Theme, s.status)
		label.Color = th.DangerColor
	case s.playing != "":
		label = material.Body2(th.Theme, "Now playing: "+s.playing)
	default:
		label = material.Body2(th.Theme, fmt.Sprintf("%d channels", s.view.Len()))
		label.Color = th.MutedText
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			if s.status == "" {
				return D{}
			}
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, func(gtx C) D {
				sz := gtx.Px(unit.Dp(16))
				gtx.Constraints.Min = image.Pt(sz, sz)
				return ErrorIcon.Layout(gtx, th.DangerColor)
			})
		}),
		layout.Flexed(1, component.TruncatingLabelStyle(label).Layout),
	)
}

// iconButton renders one transparent control button.
func (s *BrowseScreen) iconButton(click *widget.Clickable, icon *widget.Icon) layout.Widget {
	return func(gtx C) D {
		btn := material.IconButton(th.Theme, click, icon)
		btn.Size = unit.Dp(22)
		btn.Inset = layout.UniformInset(unit.Dp(6))
		btn.Background = th.Surface
		btn.Color = th.Fg
		return btn.Layout(gtx)
	}
}
