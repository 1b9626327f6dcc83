package session

// TimerPurpose names a cooperative timer owned by the controller. Keying
// timers by purpose (rather than holding loose handles) lets every state
// transition cancel exactly the timers it must, which is the guard against
// a stale timer firing after its round has already advanced.
type TimerPurpose string

const (
	TimerIntroDelay     TimerPurpose = "intro-delay"
	TimerRoundCountdown TimerPurpose = "round-countdown"
	TimerReveal         TimerPurpose = "reveal"
	TimerSignInPrompt   TimerPurpose = "signin-prompt"
	TimerLoadError      TimerPurpose = "load-error"
)

type timerEntry struct {
	remainingTicks int
	paused         bool
}

// TimerRegistry tracks cooperative countdown timers advanced by the host
// tick loop. No goroutines, no time.AfterFunc: expiry only ever happens
// inside Tick, so timer callbacks cannot interleave with transitions.
type TimerRegistry struct {
	tickRate int
	timers   map[TimerPurpose]*timerEntry
}

// NewTimerRegistry creates a registry advancing at the given tick rate.
func NewTimerRegistry(tickRate int) *TimerRegistry {
	if tickRate <= 0 {
		tickRate = 30
	}
	return &TimerRegistry{
		tickRate: tickRate,
		timers:   make(map[TimerPurpose]*timerEntry),
	}
}

// Start arms (or re-arms) a timer for the given number of seconds.
func (t *TimerRegistry) Start(purpose TimerPurpose, seconds float64) {
	ticks := int(seconds * float64(t.tickRate))
	if ticks < 1 {
		ticks = 1
	}
	t.timers[purpose] = &timerEntry{remainingTicks: ticks}
}

// Tick advances all unpaused timers by one tick and returns the purposes
// that expired this tick. Expired timers are removed.
func (t *TimerRegistry) Tick() []TimerPurpose {
	var expired []TimerPurpose
	for purpose, entry := range t.timers {
		if entry.paused {
			continue
		}
		entry.remainingTicks--
		if entry.remainingTicks <= 0 {
			expired = append(expired, purpose)
			delete(t.timers, purpose)
		}
	}
	return expired
}

// Pause freezes a timer without losing its elapsed time.
func (t *TimerRegistry) Pause(purpose TimerPurpose) {
	if entry, ok := t.timers[purpose]; ok {
		entry.paused = true
	}
}

// Resume unfreezes a paused timer.
func (t *TimerRegistry) Resume(purpose TimerPurpose) {
	if entry, ok := t.timers[purpose]; ok {
		entry.paused = false
	}
}

// Cancel removes a timer. Cancelled timers never expire.
func (t *TimerRegistry) Cancel(purpose TimerPurpose) {
	delete(t.timers, purpose)
}

// CancelAll removes every timer. Called on every state transition and on
// unmount so nothing fires into a phase it doesn't belong to.
func (t *TimerRegistry) CancelAll() {
	clear(t.timers)
}

// Active reports whether a timer is armed.
func (t *TimerRegistry) Active(purpose TimerPurpose) bool {
	_, ok := t.timers[purpose]
	return ok
}

// Remaining returns a timer's remaining seconds, or 0 when not armed.
func (t *TimerRegistry) Remaining(purpose TimerPurpose) float64 {
	entry, ok := t.timers[purpose]
	if !ok {
		return 0
	}
	return float64(entry.remainingTicks) / float64(t.tickRate)
}
