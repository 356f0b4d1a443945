package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func newSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(SessionOptions{
		Config: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60},
		Player: "carol",
		Clock:  core.NewManualClock(1000),
		Logger: log.New(io.Discard),
	})
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newSession(t)

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected variant")
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first tick")
	}

	m, _ = sendSession(t, m, TickMsg{})
	if !strings.Contains(m.View(), "returns 0") {
		t.Error("game view should show the status line")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = sendSession(t, m, TickMsg{})
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if m.InGame() {
		t.Fatal("b while paused should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("going back must not end the session")
	}
	if !strings.Contains(m.View(), "P O N G") {
		t.Error("menu should be shown again")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newSession(t)

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "BEST RALLIES") {
		t.Fatal("tab should open the scoreboard")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "P O N G") {
		t.Error("esc should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("leaving the scoreboard must not end the session")
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newSession(t)
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.IsQuitting() || cmd == nil {
		t.Error("esc in game should end the session")
	}
	if m.View() != "" {
		t.Error("ended session should render nothing")
	}
}

func TestResolveHostKeyPath(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "keys", "host_key")

	got, err := resolveHostKeyPath(want)
	if err != nil {
		t.Fatalf("resolveHostKeyPath() failed: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Error("key directory should be created")
	}
}

func TestResolveHostKeyPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKeyPath("")
	if err != nil {
		t.Fatalf("resolveHostKeyPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".pong", "host_key"); got != want {
		t.Errorf("default path = %q, expected %q", got, want)
	}
}

func TestSSHServerStopsOnContextCancel(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.DBPath = ""
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, expected nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
