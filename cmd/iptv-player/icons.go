// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"gioui.org/widget"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var PlayIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

var PauseIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var StopIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVStop)
	return icon
}()

var PrevIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVSkipPrevious)
	return icon
}()

var NextIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVSkipNext)
	return icon
}()

var MuteIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVVolumeOff)
	return icon
}()

var ErrorIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AlertErrorOutline)
	return icon
}()

var VolumeIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVVolumeUp)
	return icon
}()
