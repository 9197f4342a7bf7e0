package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/boxterm/event"
)

// Run draws the document and feeds input to it until ctx ends, input closes or a stop is requested
// Queued requests are serviced between reads, never during render or parse
func (s *Session) Run(ctx context.Context) error {
	s.Render(nil)

	done := make(chan struct{})
	defer close(done)
	go s.wakeOnRequest(ctx, done)

	buf := make([]byte, 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.drain() {
			return nil
		}

		timeout := s.idlePoll
		if s.parser.Pending() > 0 {
			timeout = s.escapeDelay
		}

		n, err := s.backend.Read(buf, timeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.parser.Flush()
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if n == 0 {
			// Idle: a pending lone ESC is the escape key
			if s.parser.Pending() > 0 {
				s.parser.Flush()
			}
			continue
		}
		s.parser.Feed(buf[:n])
	}
}

// wakeOnRequest interrupts the read wait when a request is queued or ctx ends
func (s *Session) wakeOnRequest(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.wake()
			return
		case <-s.queue.Notify():
			s.wake()
		}
	}
}

func (s *Session) wake() {
	if err := s.backend.Wake(); err != nil {
		log.Printf("session: wake: %v", err)
	}
}

// drain services queued requests, reports whether a stop was requested
func (s *Session) drain() bool {
	if s.queue.Len() == 0 {
		return false
	}
	for _, req := range event.Coalesce(s.queue.Consume()) {
		log.Printf("session: request %s", req)
		switch req {
		case event.RequestResize:
			s.Rescale()
		case event.RequestResume:
			if err := s.Restore(); err != nil {
				log.Printf("session: restore: %v", err)
			}
		case event.RequestStop:
			return true
		}
	}
	return false
}
