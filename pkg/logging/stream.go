package logging

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Stream fans log entries out to subscribers. Handlers are invoked
// synchronously on the publishing goroutine, in subscription order.
type Stream struct {
	mu          sync.Mutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	id      int
	handler func(LogEntry)
}

// NewStream creates a stream without subscribers.
func NewStream() *Stream {
	return &Stream{}
}

// Subscribe registers handler and returns the function that removes it.
// The returned function is idempotent.
func (s *Stream) Subscribe(handler func(LogEntry)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Stream) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers entry to every current subscriber. Handlers may publish
// or unsubscribe without deadlocking.
func (s *Stream) Publish(entry LogEntry) {
	s.mu.Lock()
	handlers := make([]func(LogEntry), len(s.subscribers))
	for i, sub := range s.subscribers {
		handlers[i] = sub.handler
	}
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(entry)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Stream) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// StackTrace renders the calling goroutine's stack, skipping the given number
// of frames above StackTrace itself. Runtime and iterator plumbing frames are
// left out.
func StackTrace(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !strings.HasPrefix(frame.Function, "iter.") {
			fmt.Fprintf(&b, "%s (at %s:%d)\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
