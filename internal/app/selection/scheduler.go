package selection

import (
	"sync"
	"time"
)

const defaultReloadDebounce = 400 * time.Millisecond

// ReloadScheduler coalesces bursts of selection changes into one prompt
// reload. Trailing-edge debounce: every Schedule call restarts the timer,
// the callback fires once when the burst settles. Schedule is a no-op while
// the gate reports that the prompt panel is not visible.
type ReloadScheduler struct {
	mu    sync.Mutex
	delay time.Duration
	gate  func() bool
	fn    func()
	timer *time.Timer
}

func NewReloadScheduler(delay time.Duration, gate func() bool, fn func()) *ReloadScheduler {
	if delay <= 0 {
		delay = defaultReloadDebounce
	}
	return &ReloadScheduler{
		delay: delay,
		gate:  gate,
		fn:    fn,
	}
}

// Schedule (re)starts the debounce timer. Returns true if a reload was
// scheduled or extended, false when gated off.
func (s *ReloadScheduler) Schedule() bool {
	if s == nil || s.fn == nil {
		return false
	}
	if s.gate != nil && !s.gate() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
	return true
}

func (s *ReloadScheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending reload.
func (s *ReloadScheduler) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
