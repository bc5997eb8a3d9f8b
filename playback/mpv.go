package playback

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrClosed reports a command sent after the engine shut down.
var ErrClosed = errors.New("playback: engine closed")

// ipcDialTimeout bounds how long we wait for a freshly launched mpv
// to open its IPC socket.
const ipcDialTimeout = 5 * time.Second

// MPV remote-controls an mpv process over its JSON IPC socket.
type MPV struct {
	mu     sync.Mutex
	conn   net.Conn
	cmd    *exec.Cmd
	socket string
	reqID  int
}

// MPVOptions configure how the mpv process is launched.
type MPVOptions struct {
	// Binary is the mpv executable, "mpv" when empty.
	Binary string
	// Socket is the IPC socket path. Empty picks a unique per-session
	// path under the temp directory.
	Socket string
	// Args are appended to the baseline mpv arguments.
	Args []string
}

// NewMPV launches mpv idle and connects to its IPC socket, retrying
// until mpv opens it or the dial timeout passes.
func NewMPV(opts MPVOptions) (*MPV, error) {
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}
	socket := opts.Socket
	if socket == "" {
		socket = filepath.Join(os.TempDir(), "iptv-player-"+uuid.NewString()+".sock")
	}
	args := append([]string{
		"--idle=yes",
		"--force-window=yes",
		"--no-terminal",
		"--network-timeout=10",
		"--input-ipc-server=" + socket,
	}, opts.Args...)

	cmd := exec.Command(binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("playback: start mpv: %w", err)
	}
	conn, err := dialIPC(socket, ipcDialTimeout)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return nil, err
	}
	m := &MPV{
		conn:   conn,
		cmd:    cmd,
		socket: socket,
	}
	go m.drain(conn)
	return m, nil
}

// dialIPC connects to the socket, retrying while mpv starts up.
func dialIPC(socket string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("playback: connect mpv ipc: %w", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// drain consumes mpv's replies and events so the socket never backs
// up. Command failures are logged; events are uninteresting.
func (m *MPV) drain(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply struct {
			Error string `json:"error"`
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			continue
		}
		if reply.Event == "" && reply.Error != "" && reply.Error != "success" {
			log.Printf("mpv: command failed: %s", reply.Error)
		}
	}
}

// command sends one JSON IPC command line.
func (m *MPV) command(args ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return ErrClosed
	}
	m.reqID++
	msg, err := json.Marshal(struct {
		Command   []interface{} `json:"command"`
		RequestID int           `json:"request_id"`
	}{Command: args, RequestID: m.reqID})
	if err != nil {
		return fmt.Errorf("playback: encode command: %w", err)
	}
	msg = append(msg, '\n')
	if _, err := m.conn.Write(msg); err != nil {
		return fmt.Errorf("playback: send command: %w", err)
	}
	return nil
}

func (m *MPV) Play(url, title string) error {
	if title != "" {
		if err := m.command("set_property", "force-media-title", title); err != nil {
			return err
		}
	}
	return m.command("loadfile", url)
}

func (m *MPV) Stop() error {
	return m.command("stop")
}

func (m *MPV) SetPause(paused bool) error {
	return m.command("set_property", "pause", paused)
}

func (m *MPV) SetVolume(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return m.command("set_property", "volume", percent)
}

func (m *MPV) SetMute(muted bool) error {
	return m.command("set_property", "mute", muted)
}

// Close asks mpv to quit, then gives it a moment before killing it.
// Safe to call more than once.
func (m *MPV) Close() error {
	m.mu.Lock()
	if m.conn == nil {
		m.mu.Unlock()
		return nil
	}
	conn := m.conn
	m.conn = nil
	conn.Write([]byte(`{"command":["quit"]}` + "\n"))
	conn.Close()
	if m.socket != "" {
		os.Remove(m.socket)
	}
	cmd := m.cmd
	m.cmd = nil
	m.mu.Unlock()

	if cmd == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		cmd.Process.Kill()
		<-done
	}
	return nil
}
