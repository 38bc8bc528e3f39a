package logging

import (
	"strings"
	"testing"
)

func TestStream_PublishOrder(t *testing.T) {
	s := NewStream()
	var order []string

	s.Subscribe(func(e LogEntry) { order = append(order, "first:"+e.Message) })
	s.Subscribe(func(e LogEntry) { order = append(order, "second:"+e.Message) })

	s.Publish(LogEntry{Message: "a"})

	if len(order) != 2 || order[0] != "first:a" || order[1] != "second:a" {
		t.Errorf("unexpected delivery order: %v", order)
	}
}

func TestStream_Unsubscribe(t *testing.T) {
	s := NewStream()
	calls := 0

	unsubscribe := s.Subscribe(func(LogEntry) { calls++ })
	s.Publish(LogEntry{})
	unsubscribe()
	unsubscribe()
	s.Publish(LogEntry{})

	if calls != 1 {
		t.Errorf("expected 1 delivery, got %d", calls)
	}
	if s.Subscribers() != 0 {
		t.Errorf("expected no subscribers, got %d", s.Subscribers())
	}
}

func TestStream_HandlerMayUnsubscribeAndPublish(t *testing.T) {
	s := NewStream()
	var received []string

	var unsubscribe func()
	unsubscribe = s.Subscribe(func(e LogEntry) {
		received = append(received, e.Message)
		if e.Message == "outer" {
			unsubscribe()
			s.Publish(LogEntry{Message: "inner"})
		}
	})

	s.Publish(LogEntry{Message: "outer"})

	if len(received) != 1 || received[0] != "outer" {
		t.Errorf("unexpected deliveries: %v", received)
	}
}

func TestStackTrace_SkipsFrames(t *testing.T) {
	trace := helperTrace()
	if trace == "" {
		t.Fatal("expected a stack trace")
	}
	first, _, _ := strings.Cut(trace, "\n")
	if !strings.Contains(first, "TestStackTrace_SkipsFrames") {
		t.Errorf("first frame should be the test, got %q", first)
	}
}

func helperTrace() string {
	return StackTrace(1)
}
