// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"strings"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	applayout "github.com/VodenoFF/IPTV-Player/layout"
)

// LoginScreen collects Xtream panel credentials.
type LoginScreen struct {
	ui *UI

	host     widget.Editor
	username widget.Editor
	password widget.Editor
	remember widget.Bool
	submit   widget.Clickable

	busy   bool
	status string
}

// NewLoginScreen builds the login form, prefilled with any account
// saved by a previous session.
func NewLoginScreen(ui *UI) *LoginScreen {
	l := &LoginScreen{ui: ui}
	l.host.SingleLine = true
	l.host.Submit = true
	l.username.SingleLine = true
	l.username.Submit = true
	l.password.SingleLine = true
	l.password.Submit = true
	l.password.Mask = '•'

	if creds, err := ui.store.LoadCredentials(); err == nil {
		l.host.SetText(creds.Host)
		l.username.SetText(creds.Username)
		l.password.SetText(creds.Password)
		l.remember.Value = true
	}
	return l
}

// submitted reports whether the user asked to sign in this frame,
// either with the button or by hitting enter in a field.
func (l *LoginScreen) submitted() bool {
	ok := l.submit.Clicked()
	for _, ed := range []*widget.Editor{&l.host, &l.username, &l.password} {
		for _, e := range ed.Events() {
			if _, isSubmit := e.(widget.SubmitEvent); isSubmit {
				ok = true
			}
		}
	}
	return ok
}

// attempt validates the form and launches the sign-in sequence.
func (l *LoginScreen) attempt() {
	if l.busy {
		return
	}
	host := strings.TrimSpace(l.host.Text())
	user := strings.TrimSpace(l.username.Text())
	pass := l.password.Text()
	if host == "" || user == "" || pass == "" {
		l.status = "Server, username, and password are all required."
		return
	}
	l.busy = true
	l.status = "Signing in..."
	go l.ui.signIn(host, user, pass, l.remember.Value)
}

// Layout the login form centered in the window.
func (l *LoginScreen) Layout(gtx C) D {
	if l.submitted() {
		l.attempt()
	}
	paint.Fill(gtx.Ops, th.Bg)
	return layout.Center.Layout(gtx, func(gtx C) D {
		max := gtx.Px(unit.Dp(420))
		if gtx.Constraints.Max.X > max {
			gtx.Constraints.Max.X = max
		}
		panel := applayout.Panel{
			Color:  th.Surface,
			Radius: unit.Dp(12),
			Inset:  layout.UniformInset(unit.Dp(24)),
		}
		return panel.Layout(gtx, l.layoutForm)
	})
}

func (l *LoginScreen) layoutForm(gtx C) D {
	spacer := layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H5(th.Theme, "IPTV Player").Layout),
		spacer,
		layout.Rigid(l.field("Server address", &l.host)),
		spacer,
		layout.Rigid(l.field("Username", &l.username)),
		spacer,
		layout.Rigid(l.field("Password", &l.password)),
		spacer,
		layout.Rigid(material.CheckBox(th.Theme, &l.remember, "Remember this account").Layout),
		spacer,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			label := "Sign in"
			if l.busy {
				label = "Signing in..."
			}
			return material.Button(th.Theme, &l.submit, label).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			if l.status == "" {
				return D{}
			}
			return layout.Inset{Top: unit.Dp(12)}.Layout(gtx, func(gtx C) D {
				msg := material.Body2(th.Theme, l.status)
				if !l.busy {
					msg.Color = th.DangerColor
				}
				return msg.Layout(gtx)
			})
		}),
	)
}

// field wraps an editor in the bordered box all form inputs share.
func (l *LoginScreen) field(hint string, ed *widget.Editor) layout.Widget {
	return func(gtx C) D {
		border := widget.Border{
			Color:        th.FieldBorder,
			CornerRadius: unit.Dp(4),
			Width:        unit.Dp(1),
		}
		return border.Layout(gtx, func(gtx C) D {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return material.Editor(th.Theme, ed, hint).Layout(gtx)
			})
		})
	}
}
