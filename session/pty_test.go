//go:build linux

package session

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/event"
	"github.com/lixenwraith/boxterm/terminal"
)

func TestSessionOnPTY(t *testing.T) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}))

	// Drain output so frame writes never block on a full pty buffer
	go io.Copy(io.Discard, ptm)

	doc := document.New()
	doc.Body = document.NewRoot(document.NewText("pty"))
	keys := make(chan event.Event, 8)
	doc.Handle(event.KindDraw, func(d *document.Document, ev event.Event) {
		keys <- ev
	})

	s := New(terminal.NewBackend(pts, pts), doc, WithEscapeDelay(10*time.Millisecond))

	before, err := unix.IoctlGetTermios(int(pts.Fd()), unix.TCGETS)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.Equal(t, 24, doc.Height)
	require.Equal(t, 80, doc.Width)

	raw, err := unix.IoctlGetTermios(int(pts.Fd()), unix.TCGETS)
	require.NoError(t, err)
	require.Zero(t, raw.Lflag&unix.ECHO, "echo should be off")
	require.Zero(t, raw.Lflag&unix.ICANON, "canonical mode should be off")
	require.EqualValues(t, 1, raw.Cc[unix.VMIN])
	require.EqualValues(t, 0, raw.Cc[unix.VTIME])

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	_, err = ptm.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case ev := <-keys:
		require.Equal(t, "q", ev.Text())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for input event")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	s.Cleanup()
	after, err := unix.IoctlGetTermios(int(pts.Fd()), unix.TCGETS)
	require.NoError(t, err)
	require.Equal(t, before.Lflag, after.Lflag, "attributes restored")
}

func TestSessionRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	s := New(terminal.NewBackend(r, w), document.New())
	require.ErrorIs(t, s.Setup(), terminal.ErrNotTerminal)
}

func TestStopWakesPTYRead(t *testing.T) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 10, Cols: 40}))
	go io.Copy(io.Discard, ptm)

	s := New(terminal.NewBackend(pts, pts), document.New())
	// Only a wake can end the wait within the deadline below
	s.idlePoll = 30 * time.Second

	require.NoError(t, s.Start())
	defer s.Cleanup()

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	s.Queue().Push(event.RequestStop)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after stop request")
	}
}
