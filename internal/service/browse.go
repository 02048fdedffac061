package service

import (
	"sync"
	"time"

	"github.com/royentertainment/roy-server/internal/catalog"
	domainerrors "github.com/royentertainment/roy-server/internal/errors"
	"github.com/royentertainment/roy-server/internal/id"
	"github.com/royentertainment/roy-server/internal/logger"
)

// DefaultSessionExpiry is how long an untouched browse session lives before
// the reaper closes it.
const DefaultSessionExpiry = 30 * time.Minute

// BrowseOptions tunes the browse session registry. Zero values pick the
// defaults.
type BrowseOptions struct {
	PageSize int
	Debounce time.Duration
	Expiry   time.Duration
}

// BrowseService owns the registry of live query sessions. Each session holds
// the criteria, debounce timer and reveal cursor of one connected catalog
// page; the registry expires sessions that have gone quiet.
type BrowseService struct {
	store *catalog.Store
	opts  BrowseOptions
	log   *logger.Logger

	mu       sync.Mutex
	sessions map[string]*browseEntry
	done     chan struct{}
}

type browseEntry struct {
	session    *catalog.Session
	createdAt  time.Time
	lastAccess time.Time
}

// NewBrowseService creates the registry and starts its expiry reaper.
func NewBrowseService(store *catalog.Store, opts BrowseOptions, log *logger.Logger) *BrowseService {
	if opts.Expiry <= 0 {
		opts.Expiry = DefaultSessionExpiry
	}

	s := &BrowseService{
		store:    store,
		opts:     opts,
		log:      log,
		sessions: make(map[string]*browseEntry),
		done:     make(chan struct{}),
	}
	go s.reapLoop()
	return s
}

// Create opens a new query session with default criteria and returns its ID.
func (s *BrowseService) Create() (string, *catalog.Session, error) {
	sessionID, err := id.Generate("qs")
	if err != nil {
		return "", nil, domainerrors.Internal("generate session ID").WithCause(err)
	}

	session := catalog.NewSession(s.store, catalog.SessionConfig{
		PageSize: s.opts.PageSize,
		Debounce: s.opts.Debounce,
	})

	now := time.Now()
	s.mu.Lock()
	s.sessions[sessionID] = &browseEntry{
		session:    session,
		createdAt:  now,
		lastAccess: now,
	}
	count := len(s.sessions)
	s.mu.Unlock()

	s.log.Info("browse session created", "session_id", sessionID, "active", count)
	return sessionID, session, nil
}

// Get returns a live session and marks it as touched.
func (s *BrowseService) Get(sessionID string) (*catalog.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.NotFoundf("session %s not found", sessionID)
	}
	entry.lastAccess = time.Now()
	return entry.session, nil
}

// Destroy closes a session and removes it from the registry.
func (s *BrowseService) Destroy(sessionID string) error {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return domainerrors.NotFoundf("session %s not found", sessionID)
	}

	entry.session.Close()
	s.log.Info("browse session destroyed", "session_id", sessionID)
	return nil
}

// Count returns the number of live sessions.
func (s *BrowseService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Stop shuts the reaper down and closes every live session.
func (s *BrowseService) Stop() {
	close(s.done)

	s.mu.Lock()
	for sessionID, entry := range s.sessions {
		entry.session.Close()
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
}

// reapLoop periodically closes sessions whose last access is older than the
// expiry window.
func (s *BrowseService) reapLoop() {
	interval := s.opts.Expiry / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.reapExpired(time.Now())
		}
	}
}

// reapExpired closes and removes sessions untouched since before the cutoff.
func (s *BrowseService) reapExpired(now time.Time) int {
	cutoff := now.Add(-s.opts.Expiry)

	s.mu.Lock()
	var expired []*browseEntry
	for sessionID, entry := range s.sessions {
		if entry.lastAccess.Before(cutoff) {
			expired = append(expired, entry)
			delete(s.sessions, sessionID)
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	for _, entry := range expired {
		entry.session.Close()
	}

	if len(expired) > 0 {
		s.log.Info("reaped expired browse sessions", "expired", len(expired), "active", remaining)
	}
	return len(expired)
}
