// Package session holds in-progress drafts across a user's review-and-edit
// loop, keyed by an opaque identifier instead of ambient process state.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmshah/job-apply-agent/internal/models"
)

// sessionTTL bounds how long an abandoned draft stays resident. The review
// loop takes minutes; anything older than this was never going to be sent.
const sessionTTL = 2 * time.Hour

// Draft is the per-submission context produced by preparation and consumed
// by the send step. ResumeBytes back the attachment of the chosen resume.
type Draft struct {
	ID             string
	RecruiterEmail string
	Selection      models.SelectionVerdict
	Email          models.EmailDraft
	ResumeName     string
	ResumeBytes    []byte
	CreatedAt      time.Time
}

// Store is an in-memory, mutex-guarded session map. Sessions are shared
// across HTTP requests, so all access goes through the lock. Drafts past
// their TTL are invisible to Get and swept on the next Put, so abandoned
// sessions do not accumulate for the process lifetime.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		drafts: make(map[string]*Draft),
		ttl:    sessionTTL,
		now:    time.Now,
	}
}

// Put stores a draft under a fresh opaque identifier and returns it
func (s *Store) Put(draft *Draft) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	draft.ID = id
	draft.CreatedAt = s.now()
	s.drafts[id] = draft

	return id
}

// Get returns the draft for a session id. Expired drafts are misses.
func (s *Store) Get(id string) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok || s.expired(draft) {
		return nil, false
	}
	return draft, true
}

// Delete removes a session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

func (s *Store) expired(draft *Draft) bool {
	return s.now().Sub(draft.CreatedAt) > s.ttl
}

// pruneLocked drops expired drafts. Caller holds the write lock.
func (s *Store) pruneLocked() {
	for id, draft := range s.drafts {
		if s.expired(draft) {
			delete(s.drafts, id)
		}
	}
}
