// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"

	"github.com/VodenoFF/IPTV-Player/async"
	"github.com/VodenoFF/IPTV-Player/cache"
	"github.com/VodenoFF/IPTV-Player/playback"
	"github.com/VodenoFF/IPTV-Player/profile"
	"github.com/VodenoFF/IPTV-Player/store"
	"github.com/VodenoFF/IPTV-Player/update"
	"github.com/VodenoFF/IPTV-Player/xtream"
)

// stage names the screen the UI is on.
type stage uint8

const (
	stageLogin stage = iota
	stageBrowse
)

// signInTimeout bounds the whole login sequence: auth plus the two
// catalog fetches.
const signInTimeout = 30 * time.Second

// UI manages the state for the entire application's UI. All of its
// fields are owned by the event loop goroutine; background work
// reaches them through closures submitted to the update queue.
type UI struct {
	store   *store.Store
	updates *update.Queue
	icons   *cache.Cache[string, image.Image]
	failed  *cache.Failures[string]
	loader  *async.Loader
	engine  playback.Engine

	login  *LoginScreen
	browse *BrowseScreen
	stage  stage
}

// NewUI wires the stores, caches, loader, and screens together from
// the flag configuration.
func NewUI() (*UI, error) {
	st, err := store.Open(configDir)
	if err != nil {
		return nil, err
	}

	mode := update.Batched
	if immediateUpdates {
		mode = update.Immediate
	}
	ui := &UI{
		store:   st,
		updates: update.NewQueue(mode, batchSize, batchInterval),
		icons:   cache.New[string, image.Image](cacheCapacity),
		failed:  cache.NewFailures[string](),
	}
	ui.loader = async.NewLoader(async.Options{
		Cache:   ui.icons,
		Failed:  ui.failed,
		Fetch:   async.NewImageFetcher(nil, async.DefaultIconBox),
		Workers: workers,
		OnOutcome: func(out async.Outcome) {
			if out.Err != nil {
				// Once per id per session: the failure memo blocks
				// retries, and the placeholder tile stays.
				log.Printf("icon %s: %v", out.ID, out.Err)
				return
			}
			ui.updates.Submit(func() {
				ui.browse.view.BindIcon(out.ID, out.Image)
			})
		},
	})
	ui.engine = newEngine()

	settings, err := st.LoadSettings()
	if err != nil {
		log.Printf("settings: %v", err)
	}
	if err := ui.engine.SetVolume(settings.Volume); err != nil {
		log.Printf("volume: %v", err)
	}

	ui.browse = NewBrowseScreen(ui, settings)
	ui.login = NewLoginScreen(ui)

	if demoMode {
		ui.browse.ShowCatalog(demoProvider{}, demoCatalog())
		ui.stage = stageBrowse
	}
	return ui, nil
}

// newEngine picks the video backend the flags ask for, falling back
// to no playback when mpv cannot be launched.
func newEngine() playback.Engine {
	if demoMode || noVideo {
		return &playback.Null{}
	}
	engine, err := playback.NewMPV(playback.MPVOptions{Binary: mpvBinary})
	if err != nil {
		log.Printf("video: %v (running without playback)", err)
		return &playback.Null{}
	}
	return engine
}

// Run handles window events and renders the application.
func (ui *UI) Run(w *app.Window) error {
	profiler := profile.Opt(profileOpt).NewProfiler()
	profiler.Start()
	var ops op.Ops
	for {
		select {
		case batch := <-ui.updates.Updates():
			if ui.updates.Apply(batch) > 0 {
				w.Invalidate()
			}
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				profiler.Stop()
				ui.Shutdown()
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				ui.Layout(gtx)
				e.Frame(&ops)
			}
		}
	}
}

// Layout the active screen.
func (ui *UI) Layout(gtx C) D {
	switch ui.stage {
	case stageBrowse:
		return ui.browse.Layout(gtx)
	default:
		return ui.login.Layout(gtx)
	}
}

// Shutdown stops background work and the video backend. Icon workers
// get a bounded grace period; a stuck download must not hold the
// window open. The loader logs its own timeout.
func (ui *UI) Shutdown() {
	ui.loader.Shutdown(2 * time.Second)
	ui.updates.Close()
	if err := ui.engine.Close(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// signIn runs the login sequence off the UI goroutine and reports
// back through the update queue.
func (ui *UI) signIn(host, user, pass string, remember bool) {
	fail := func(err error) {
		ui.updates.Submit(func() {
			ui.login.busy = false
			ui.login.status = loginMessage(err)
		})
	}

	client, err := xtream.NewClient(host, user, pass, nil)
	if err != nil {
		fail(err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), signInTimeout)
	defer cancel()
	if err := client.Login(ctx); err != nil {
		fail(err)
		return
	}
	cats, err := client.LiveCategories(ctx)
	if err != nil {
		fail(err)
		return
	}
	streams, err := client.LiveStreams(ctx)
	if err != nil {
		fail(err)
		return
	}
	catalog := xtream.BuildCatalog(cats, streams)

	if remember {
		if err := ui.store.SaveCredentials(store.Credentials{
			Host:     host,
			Username: user,
			Password: pass,
		}); err != nil {
			log.Printf("remember account: %v", err)
		}
	} else if err := ui.store.ClearCredentials(); err != nil {
		log.Printf("forget account: %v", err)
	}

	ui.updates.Submit(func() {
		ui.login.busy = false
		ui.login.status = ""
		ui.browse.ShowCatalog(client, catalog)
		ui.stage = stageBrowse
	})
}

// loginMessage turns a sign-in failure into something a person can
// act on.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, xtream.ErrAuth):
		return "The panel rejected these credentials."
	case errors.Is(err, context.DeadlineExceeded):
		return "The panel did not answer in time."
	default:
		return "Could not sign in: " + err.Error()
	}
}
