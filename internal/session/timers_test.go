package session

import "testing"

func TestTimerExpiry(t *testing.T) {
	reg := NewTimerRegistry(10)
	reg.Start(TimerIntroDelay, 0.5) // 5 ticks

	for i := 0; i < 4; i++ {
		if expired := reg.Tick(); len(expired) != 0 {
			t.Fatalf("timer expired early at tick %d", i)
		}
	}
	expired := reg.Tick()
	if len(expired) != 1 || expired[0] != TimerIntroDelay {
		t.Fatalf("expected intro-delay expiry, got %v", expired)
	}
	if reg.Active(TimerIntroDelay) {
		t.Error("expired timer still active")
	}
}

func TestTimerPausePreservesElapsed(t *testing.T) {
	reg := NewTimerRegistry(10)
	reg.Start(TimerRoundCountdown, 1.0) // 10 ticks

	for i := 0; i < 4; i++ {
		reg.Tick()
	}
	before := reg.Remaining(TimerRoundCountdown)

	reg.Pause(TimerRoundCountdown)
	for i := 0; i < 20; i++ {
		if expired := reg.Tick(); len(expired) != 0 {
			t.Fatal("paused timer expired")
		}
	}
	if got := reg.Remaining(TimerRoundCountdown); got != before {
		t.Errorf("paused timer lost time: %v -> %v", before, got)
	}

	reg.Resume(TimerRoundCountdown)
	for i := 0; i < 5; i++ {
		reg.Tick()
	}
	expired := reg.Tick()
	if len(expired) != 1 || expired[0] != TimerRoundCountdown {
		t.Fatalf("expected countdown expiry after resume, got %v", expired)
	}
}

func TestTimerCancelAll(t *testing.T) {
	reg := NewTimerRegistry(10)
	reg.Start(TimerIntroDelay, 0.1)
	reg.Start(TimerRoundCountdown, 0.1)
	reg.Start(TimerSignInPrompt, 0.1)

	reg.CancelAll()

	for i := 0; i < 10; i++ {
		if expired := reg.Tick(); len(expired) != 0 {
			t.Fatalf("cancelled timer fired: %v", expired)
		}
	}
}

func TestTimerRearm(t *testing.T) {
	reg := NewTimerRegistry(10)
	reg.Start(TimerReveal, 1.0)
	for i := 0; i < 9; i++ {
		reg.Tick()
	}
	// Re-arming resets the deadline
	reg.Start(TimerReveal, 1.0)
	if expired := reg.Tick(); len(expired) != 0 {
		t.Fatal("re-armed timer kept old deadline")
	}
	if reg.Remaining(TimerReveal) != 0.9 {
		t.Errorf("remaining = %v, expected 0.9", reg.Remaining(TimerReveal))
	}
}
