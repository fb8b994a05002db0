package server

import (
	"testing"
	"time"
)

func TestRegisterAndUnregister(t *testing.T) {
	h := NewHub()
	a := h.RegisterClient("alice")
	b := h.RegisterClient("bob")

	if a.ID == b.ID || a.SessionID == b.SessionID {
		t.Fatalf("duplicate client ids %d %q", a.ID, a.SessionID)
	}
	if h.Players() != 2 {
		t.Fatalf("Players() = %d, want 2", h.Players())
	}

	h.UnregisterClient(a.ID)
	h.UnregisterClient(a.ID)
	if h.Players() != 1 {
		t.Errorf("Players() = %d, want 1", h.Players())
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel still open after unregister")
	}
}

func TestReportScoreBroadcastsNewHighScore(t *testing.T) {
	h := NewHub()
	a := h.RegisterClient("alice")
	b := h.RegisterClient("bob")

	if !h.ReportScore(a.ID, 1500) {
		t.Fatal("first score not reported as a high score")
	}
	if h.ReportScore(b.ID, 900) {
		t.Error("lower score reported as a high score")
	}

	score, who := h.HighScore()
	if score != 1500 || who != "alice" {
		t.Errorf("HighScore() = %d %q, want 1500 alice", score, who)
	}

	select {
	case ev := <-b.EventsCh:
		if ev.Type != EventHighScore || ev.HighScore != 1500 || ev.Username != "alice" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("no high score event delivered")
	}
	select {
	case ev := <-b.EventsCh:
		t.Errorf("unexpected second event %+v", ev)
	default:
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	h := NewHub()
	a := h.RegisterClient("alice")

	go func() {
		ev := <-a.EventsCh
		if ev.Type == EventServerShutdown {
			h.UnregisterClient(a.ID)
		}
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	if h.Players() != 0 {
		t.Fatalf("Players() = %d after shutdown", h.Players())
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Shutdown waited past the last disconnect")
	}

	late := h.RegisterClient("carol")
	select {
	case ev := <-late.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("late client got %+v", ev)
		}
	default:
		t.Error("late client not told about the shutdown")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	h := NewHub()
	h.RegisterClient("idle")

	start := time.Now()
	h.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Shutdown returned after %v, before the timeout", elapsed)
	}
}
