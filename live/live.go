// Package live keeps interval lines of an edited score up to date.
package live

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Reu7en/Intervision-sub000/interval"
	"github.com/Reu7en/Intervision-sub000/model"
)

var ErrNotFound = errors.New("live: no such session")

// Analyzer computes the lines of a whole score.
type Analyzer func(model.Score) ([]interval.Result, error)

// Snapshot is one published analysis. Seq is the edit it was computed from.
type Snapshot struct {
	Seq   uint64            `json:"seq"`
	Bars  []interval.Result `json:"bars"`
	Error string            `json:"error,omitempty"`
}

// Session holds the latest score of one editor. Every Update bumps the
// sequence number; analysis runs once edits have paused for the debounce
// delay, and a result is only published if nothing newer was published
// before it.
type Session struct {
	ID uuid.UUID

	analyze  Analyzer
	debounce func(func())
	notify   func(Snapshot)

	mu        sync.Mutex
	score     model.Score
	seq       uint64
	published Snapshot
}

// NewSession starts a session on score. notify, if set, is called after
// every publish.
func NewSession(score model.Score, analyze Analyzer, delay time.Duration, notify func(Snapshot)) *Session {
	s := &Session{
		ID:       uuid.New(),
		analyze:  analyze,
		debounce: debounce.New(delay),
		notify:   notify,
		score:    score,
		seq:      1,
	}
	s.debounce(s.Recompute)
	return s
}

// Update replaces the score and schedules a recomputation. It returns the
// sequence number of the edit.
func (s *Session) Update(score model.Score) uint64 {
	s.mu.Lock()
	s.score = score
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	s.debounce(s.Recompute)
	return seq
}

// Seq is the number of the latest edit.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Latest returns the most recent published snapshot and whether it reflects
// the latest edit.
func (s *Session) Latest() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published, s.published.Seq == s.seq
}

// Recompute analyzes the current score right away.
func (s *Session) Recompute() {
	s.mu.Lock()
	score, seq := s.score, s.seq
	s.mu.Unlock()

	snap := Snapshot{Seq: seq}
	bars, err := s.analyze(score)
	if err != nil {
		snap.Error = err.Error()
	} else {
		snap.Bars = bars
	}
	s.Publish(snap)
}

// Publish stores snap unless a snapshot of the same or a later edit is
// already published. It reports whether snap was kept.
func (s *Session) Publish(snap Snapshot) bool {
	s.mu.Lock()
	if snap.Seq <= s.published.Seq {
		s.mu.Unlock()
		logrus.WithFields(logrus.Fields{"session": s.ID, "seq": snap.Seq, "published": s.published.Seq}).Debug("stale analysis dropped")
		return false
	}
	s.published = snap
	s.mu.Unlock()
	if s.notify != nil {
		s.notify(snap)
	}
	return true
}

// Registry is the set of open sessions.
type Registry struct {
	analyze Analyzer
	delay   time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(analyze Analyzer, delay time.Duration) *Registry {
	return &Registry{analyze: analyze, delay: delay, sessions: map[uuid.UUID]*Session{}}
}

func (r *Registry) Open(score model.Score) *Session {
	s := NewSession(score, r.analyze, r.delay, nil)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	logrus.WithField("session", s.ID).Info("session opened")
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}
	return s, nil
}

func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return errors.Wrap(ErrNotFound, id.String())
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
