//go:build !unix

package terminal

import (
	"os"
	"os/signal"

	"github.com/lixenwraith/boxterm/event"
)

// SignalWatcher turns OS signals into queued requests
type SignalWatcher struct {
	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

// WatchSignals forwards interrupt to q as a stop request; resize and resume are unix-only
func WatchSignals(q *event.Queue) *SignalWatcher {
	w := &SignalWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, os.Interrupt)
	go func() {
		defer close(w.doneCh)
		for {
			select {
			case <-w.stopCh:
				return
			case <-w.sigCh:
				q.Push(event.RequestStop)
			}
		}
	}()
	return w
}

// Stop unregisters the signals and waits for the goroutine to exit
func (w *SignalWatcher) Stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
	<-w.doneCh
}
