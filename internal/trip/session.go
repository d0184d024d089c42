package trip

import (
	"errors"
	"sync"
)

// ErrStaleReference is returned when an edit names a day, block or index
// that no longer exists, typically because the plan was regenerated between
// render and click. The edit is a no-op; the wrong item is never removed.
var ErrStaleReference = errors.New("plan reference no longer valid")

// Session is the state object for one planning view: the current plan, the
// active day, and the configuration it was generated from.
//
// A generation token guards against overlapping trip generations: the last
// Begin wins and slower completions are discarded instead of silently
// overwriting newer state. All methods are safe for concurrent use; the bot
// runs one session per chat but chats share the underlying store.
type Session struct {
	mu sync.Mutex

	config    SearchConfig
	days      Days
	activeDay int
	gen       uint64
}

// NewSession creates a session seeded with the given configuration.
func NewSession(cfg SearchConfig) *Session {
	return &Session{config: cfg}
}

// Begin marks the start of a generation request and returns its token.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Apply installs a generation result if token still identifies the most
// recent request. It reports whether the result was applied.
func (s *Session) Apply(token uint64, cfg SearchConfig, days Days) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	s.config = cfg
	s.days = days
	s.activeDay = 0
	return true
}

// Restore installs a plan without going through a generation request, e.g.
// one loaded from local storage or relayed from the history view.
func (s *Session) Restore(cfg SearchConfig, days Days) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.days = days
	s.activeDay = 0
}

// View returns the current configuration, day list and active day index.
func (s *Session) View() (SearchConfig, Days, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, s.days, s.activeDay
}

// Config returns the last successful configuration.
func (s *Session) Config() SearchConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the configuration without touching the plan.
func (s *Session) SetConfig(cfg SearchConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// SwitchDay moves the active day. Out-of-range indexes are ignored.
func (s *Session) SwitchDay(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.days) {
		return false
	}
	s.activeDay = idx
	return true
}

// ActiveDay returns the day currently in view.
func (s *Session) ActiveDay() (Day, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeDay < 0 || s.activeDay >= len(s.days) {
		return Day{}, 0, false
	}
	return s.days[s.activeDay], s.activeDay, true
}

// Generation returns the current generation token, used to stamp
// interactive edit callbacks so edits against a replaced plan are ignored.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// RemovePlace removes exactly one item at index from the named block of the
// active day and returns it. The day/block/index are re-validated under the
// lock; a stale reference returns ErrStaleReference and changes nothing.
func (s *Session) RemovePlace(blockID string, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeDay < 0 || s.activeDay >= len(s.days) {
		return Item{}, ErrStaleReference
	}
	day := s.days[s.activeDay]
	items, ok := day.Blocks[blockID]
	if !ok {
		return Item{}, ErrStaleReference
	}
	if index < 0 || index >= len(items) {
		return Item{}, ErrStaleReference
	}

	removed := items[index]
	day.Blocks[blockID] = append(items[:index:index], items[index+1:]...)
	s.days[s.activeDay] = day
	return removed, nil
}
