// SPDX-License-Identifier: Unlicense OR MIT

// Command iptv-player is a desktop IPTV client for Xtream panels:
// sign in, browse live categories, and play channels through mpv.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/unit"

	"github.com/VodenoFF/IPTV-Player/async"
	"github.com/VodenoFF/IPTV-Player/cache"
	"github.com/VodenoFF/IPTV-Player/list"
	"github.com/VodenoFF/IPTV-Player/update"
)

// Type alias common layout types for legibility.
type (
	C = layout.Context
	D = layout.Dimensions
)

// th is the active theme object.
var (
	fonts = gofont.Collection()
	th    = NewTheme(fonts)
)

var (
	// configDir overrides where credentials and settings live.
	configDir string
	// demoMode browses a generated catalog without a panel account.
	demoMode bool
	// noVideo runs the UI without a video backend.
	noVideo bool
	// debugMode outlines row bounds so slot recycling is visible.
	debugMode bool
	// mpvBinary is the mpv executable to launch.
	mpvBinary string
	// profileOpt specifies what to profile.
	profileOpt string

	// workers is how many icon downloads may run at once.
	workers int
	// cacheCapacity bounds the decoded icon cache.
	cacheCapacity int
	// bufferRows is how many rows stay ready beyond the viewport.
	bufferRows int

	// immediateUpdates applies UI updates one by one instead of in
	// batches.
	immediateUpdates bool
	// batchSize is how many UI updates one batch may carry.
	batchSize int
	// batchInterval is how often update batches are released.
	batchInterval time.Duration
)

func init() {
	flag.StringVar(&configDir, "config", "", "directory for credentials and settings (defaults to the user config dir)")
	flag.BoolVar(&demoMode, "demo", false, "browse a generated catalog without a panel account")
	flag.BoolVar(&noVideo, "no-video", false, "run without a video backend")
	flag.BoolVar(&debugMode, "debug", false, "outline channel row bounds")
	flag.StringVar(&mpvBinary, "mpv", "", "path to the mpv executable")
	flag.StringVar(&profileOpt, "profile", "none", "create the provided kind of profile. Use one of [none, cpu, mem, block, goroutine, mutex, trace]")
	flag.IntVar(&workers, "workers", async.DefaultWorkers, "number of concurrent icon downloads")
	flag.IntVar(&cacheCapacity, "icon-cache", cache.DefaultCapacity, "decoded icon cache capacity")
	flag.IntVar(&bufferRows, "buffer", list.DefaultBuffer, "rows kept ready beyond the viewport")
	flag.BoolVar(&immediateUpdates, "immediate", false, "apply UI updates one at a time instead of batching")
	flag.IntVar(&batchSize, "batch", update.DefaultBatchSize, "UI updates applied per batch")
	flag.DurationVar(&batchInterval, "batch-interval", update.DefaultBatchInterval, "how often update batches are released")
	flag.Parse()
}

func main() {
	ui, err := NewUI()
	if err != nil {
		log.Fatalf("starting up: %v", err)
	}
	go func() {
		w := app.NewWindow(
			app.Title("IPTV Player"),
			app.Size(unit.Dp(1000), unit.Dp(640)),
		)
		if err := ui.Run(w); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	// Surrender main thread to OS.
	// Necessary for certain platforms.
	app.Main()
}
