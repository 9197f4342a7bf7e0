package event

import (
	"sync"
	"testing"
)

func TestQueuePushConsume(t *testing.T) {
	q := NewQueue()
	q.Push(RequestResize)
	q.Push(RequestResume)

	if q.Len() != 2 {
		t.Fatalf("Expected 2 pending, got %d", q.Len())
	}

	got := q.Consume()
	if len(got) != 2 || got[0] != RequestResize || got[1] != RequestResume {
		t.Errorf("Unexpected consume result: %v", got)
	}
	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < queueSize+3; i++ {
		q.Push(RequestResize)
	}
	q.Push(RequestStop)

	got := q.Consume()
	if len(got) != queueSize {
		t.Fatalf("Expected %d requests, got %d", queueSize, len(got))
	}
	if got[len(got)-1] != RequestStop {
		t.Errorf("Expected newest request last, got %v", got[len(got)-1])
	}
}

func TestQueueNotify(t *testing.T) {
	q := NewQueue()
	q.Push(RequestStop)
	q.Push(RequestStop)

	select {
	case <-q.Notify():
	default:
		t.Fatal("Expected notification after push")
	}
	select {
	case <-q.Notify():
		t.Fatal("Expected a single coalesced notification")
	default:
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				q.Push(RequestResize)
			}
		}()
	}
	wg.Wait()

	got := q.Consume()
	if len(got) != 12 {
		t.Errorf("Expected 12 requests, got %d", len(got))
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name string
		in   []Request
		want []Request
	}{
		{"Empty", nil, nil},
		{"Duplicate resize", []Request{RequestResize, RequestResize}, []Request{RequestResize}},
		{"Resume absorbs resize", []Request{RequestResize, RequestResume, RequestResize}, []Request{RequestResume}},
		{"Stop kept in order", []Request{RequestResize, RequestStop}, []Request{RequestResize, RequestStop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coalesce(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Coalesce(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Coalesce(%v)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEventWithCopiesKwargs(t *testing.T) {
	base := New(KindKey, "up").With(KwAlt, true)
	derived := base.With(KwCtrl, true)

	if base.Flag(KwCtrl) {
		t.Error("With must not modify the original event")
	}
	if !derived.Flag(KwAlt) || !derived.Flag(KwCtrl) {
		t.Errorf("Expected alt and ctrl on derived event, got %v", derived.Kwargs)
	}
	if derived.Text() != "up" {
		t.Errorf("Expected text 'up', got %q", derived.Text())
	}
	if derived.Arg(5) != nil {
		t.Error("Expected nil for out of range argument")
	}
}

func TestNewWithoutArgs(t *testing.T) {
	ev := New(KindResize)
	if ev.Args != nil || ev.Kwargs != nil {
		t.Errorf("Expected empty payload, got args=%v kwargs=%v", ev.Args, ev.Kwargs)
	}
}
