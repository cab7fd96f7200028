package main

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDrainWaitsForSessions(t *testing.T) {
	h := &gameHost{log: zap.NewNop()}
	if !h.join() {
		t.Fatal("join refused before shutdown")
	}

	released := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(released)
		h.sessions.Done()
	}()

	h.drain(2 * time.Second)
	select {
	case <-released:
	default:
		t.Fatal("drain returned while a session was still running")
	}
}

func TestJoinRefusedWhileDraining(t *testing.T) {
	h := &gameHost{log: zap.NewNop()}
	h.drain(time.Second)

	if h.join() {
		h.sessions.Done()
		t.Fatal("join accepted a session after drain started")
	}
}

func TestDrainTimesOut(t *testing.T) {
	h := &gameHost{log: zap.NewNop()}
	if !h.join() {
		t.Fatal("join refused before shutdown")
	}
	defer h.sessions.Done()

	start := time.Now()
	h.drain(30 * time.Millisecond)
	if time.Since(start) > time.Second {
		t.Fatal("drain ignored its timeout")
	}
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize = %d,%d,%v", w, h, err)
	}
}
