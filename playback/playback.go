// Package playback drives the external video backend that actually
// renders streams. The UI talks to an Engine; the real implementation
// remote-controls an mpv process over its JSON IPC socket.
package playback

import (
	"log"
	"sync"
)

// Engine is what the UI needs from a video backend. Implementations
// must be safe for use from the UI goroutine alongside a Close from
// shutdown.
type Engine interface {
	// Play starts (or replaces) playback of a stream address.
	Play(url, title string) error
	// Stop ends playback but keeps the backend alive for the next Play.
	Stop() error
	// SetPause pauses or resumes the current stream.
	SetPause(paused bool) error
	// SetVolume sets the output volume in percent, 0 through 100.
	SetVolume(percent int) error
	// SetMute silences or restores the output.
	SetMute(muted bool) error
	// Close shuts the backend down.
	Close() error
}

// Null is an Engine that plays nothing, standing in when no video
// backend is available (demo mode, tests). It remembers what it was
// told so callers can observe it, and logs stream changes so headless
// runs show what would be playing.
type Null struct {
	mu      sync.Mutex
	current string
	paused  bool
	volume  int
	muted   bool
}

func (n *Null) Play(url, title string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = url
	n.paused = false
	log.Printf("playback (none): would play %q (%s)", title, url)
	return nil
}

func (n *Null) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != "" {
		log.Printf("playback (none): stopped")
	}
	n.current = ""
	return nil
}

func (n *Null) SetPause(paused bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paused = paused
	return nil
}

func (n *Null) SetVolume(percent int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = percent
	return nil
}

func (n *Null) SetMute(muted bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = muted
	return nil
}

func (n *Null) Close() error {
	return n.Stop()
}

// Current returns the address last handed to Play, empty after Stop.
func (n *Null) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

var (
	_ Engine = (*Null)(nil)
	_ Engine = (*MPV)(nil)
)
