//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/boxterm/event"
)

// SignalWatcher turns OS signals into queued requests
// The handler goroutine only enqueues; the session loop performs the work
type SignalWatcher struct {
	sigCh  chan os.Signal
	queue  *event.Queue
	stopCh chan struct{}
	doneCh chan struct{}
}

// WatchSignals starts forwarding SIGWINCH (resize), SIGCONT (resume)
// and SIGINT/SIGTERM/SIGHUP (stop) to q
func WatchSignals(q *event.Queue) *SignalWatcher {
	w := &SignalWatcher{
		sigCh:  make(chan os.Signal, 4),
		queue:  q,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, syscall.SIGWINCH, syscall.SIGCONT, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go w.watchLoop()
	return w
}

// Stop unregisters the signals and waits for the goroutine to exit
func (w *SignalWatcher) Stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
	<-w.doneCh
}

func (w *SignalWatcher) watchLoop() {
	defer close(w.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSIGNAL HANDLER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return
		case sig := <-w.sigCh:
			w.queue.Push(requestFor(sig))
		}
	}
}

func requestFor(sig os.Signal) event.Request {
	switch sig {
	case syscall.SIGWINCH:
		return event.RequestResize
	case syscall.SIGCONT:
		return event.RequestResume
	default:
		return event.RequestStop
	}
}
