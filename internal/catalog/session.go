package catalog

import (
	"sync"
	"time"

	"github.com/royentertainment/roy-server/internal/domain"
)

// Session defaults, matching the catalog page the sessions serve.
const (
	DefaultPageSize = 12
	DefaultDebounce = 300 * time.Millisecond
)

// State is the lifecycle of a query session.
type State string

// Session states. A session sits in StatePendingDebounce only between a
// keystroke and its debounce fire; every other settled moment is idle or
// ready.
const (
	StateIdle            State = "idle"
	StatePendingDebounce State = "pending_debounce"
	StateReady           State = "ready"
)

// SessionConfig tunes a query session. Zero values pick the defaults.
type SessionConfig struct {
	PageSize int
	Debounce time.Duration

	// CurrentYear anchors the latest/upcoming categories at recompute time.
	// Defaults to the local calendar year; tests inject a fixed one.
	CurrentYear func() int

	// OnReady, when set, is invoked after every recompute, outside the
	// session lock.
	OnReady func()
}

// Session is the query state of one catalog page: the live criteria, the
// last computed result list, and a reveal cursor. Text searches are
// debounced; every other mutation recomputes synchronously.
//
// All methods are safe for concurrent use.
type Session struct {
	store *Store
	cfg   SessionConfig

	mu       sync.Mutex
	criteria domain.FilterCriteria
	results  []domain.Movie
	cursor   int
	state    State
	timer    *time.Timer
	timerGen int
	closed   bool
}

// NewSession creates a session over the store with default criteria and the
// full catalog as its initial result set.
func NewSession(store *Store, cfg SessionConfig) *Session {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.CurrentYear == nil {
		cfg.CurrentYear = func() int { return time.Now().Year() }
	}

	s := &Session{
		store:    store,
		cfg:      cfg,
		criteria: domain.DefaultCriteria(),
		state:    StateIdle,
	}
	s.mu.Lock()
	s.recomputeLocked()
	s.mu.Unlock()
	return s
}

// SetTextSearch stages a new search term and (re)starts the debounce timer.
// Repeated calls within the quiet period coalesce into a single recompute,
// which always reads the term staged last.
func (s *Session) SetTextSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.criteria.SearchText = text
	s.state = StatePendingDebounce
	s.restartTimerLocked()
}

// SetCategory applies a category facet synchronously.
func (s *Session) SetCategory(c domain.Category) {
	s.applyFacet(func(cr *domain.FilterCriteria) { cr.Category = c })
}

// SetGenre applies a genre facet synchronously.
func (s *Session) SetGenre(genre string) {
	s.applyFacet(func(cr *domain.FilterCriteria) { cr.Genre = genre })
}

// SetYear applies a year facet synchronously.
func (s *Session) SetYear(year int) {
	s.applyFacet(func(cr *domain.FilterCriteria) { cr.Year = year })
}

// SetMinRating applies a rating floor synchronously.
func (s *Session) SetMinRating(floor float64) {
	s.applyFacet(func(cr *domain.FilterCriteria) { cr.MinRating = floor })
}

// SetSort applies a sort order synchronously.
func (s *Session) SetSort(key domain.SortKey) {
	s.applyFacet(func(cr *domain.FilterCriteria) { cr.Sort = key })
}

// applyFacet mutates the criteria and recomputes immediately. Any pending
// debounce timer is cancelled: the recompute already reads the live
// criteria, staged search text included, so the fire would be redundant.
func (s *Session) applyFacet(mutate func(*domain.FilterCriteria)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	mutate(&s.criteria)
	s.cancelTimerLocked()
	s.recomputeLocked()
	s.state = StateReady
	notify := s.cfg.OnReady
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// LoadMore advances the reveal cursor by one page, capped at the current
// result length. It never recomputes.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	next := s.cursor + s.cfg.PageSize
	if next > len(s.results) {
		next = len(s.results)
	}
	// The cursor never shrinks below one page, even on short results.
	if next < s.cfg.PageSize {
		next = s.cfg.PageSize
	}
	s.cursor = next
}

// ClearAll resets the criteria to defaults, cancels any pending debounce,
// and recomputes immediately.
func (s *Session) ClearAll() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.criteria = domain.DefaultCriteria()
	s.cancelTimerLocked()
	s.recomputeLocked()
	s.state = StateReady
	notify := s.cfg.OnReady
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// CurrentPage returns a copy of the revealed slice of the result list.
func (s *Session) CurrentPage() []domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.cursor
	if n > len(s.results) {
		n = len(s.results)
	}
	page := make([]domain.Movie, n)
	copy(page, s.results[:n])
	return page
}

// ResultCount returns the total size of the current result list, revealed
// or not.
func (s *Session) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Criteria returns the live criteria, including search text still waiting
// on its debounce.
func (s *Session) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close cancels any pending debounce and makes all further mutations no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelTimerLocked()
}

// restartTimerLocked arms a fresh single-shot debounce timer, invalidating
// any outstanding one via the generation counter.
func (s *Session) restartTimerLocked() {
	s.timerGen++
	gen := s.timerGen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.fireDebounce(gen)
	})
}

// cancelTimerLocked stops the pending timer and bumps the generation so a
// fire already in flight is discarded.
func (s *Session) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fireDebounce runs when the quiet period elapses. Stale fires, superseded
// by a newer keystroke or a cancel, are dropped by the generation check. The
// recompute reads the live criteria, never a snapshot captured at keystroke
// time.
func (s *Session) fireDebounce(gen int) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen || s.state != StatePendingDebounce {
		s.mu.Unlock()
		return
	}

	s.recomputeLocked()
	s.state = StateReady
	notify := s.cfg.OnReady
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// recomputeLocked runs the engine against the store snapshot and resets the
// reveal cursor to the first page.
func (s *Session) recomputeLocked() {
	s.results = Filter(s.store.All(), s.criteria, s.cfg.CurrentYear())
	s.cursor = s.cfg.PageSize
}
