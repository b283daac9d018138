package storage

import (
	"time"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/session"
)

// Journal binds a Store to one open run and implements session.Recorder.
// A nil *Journal is valid and records nothing, so callers can keep playing
// when the database is unavailable.
type Journal struct {
	store *Store
	runID string
}

// BeginRun opens a run and returns a journal for it.
func (s *Store) BeginRun(storyID, origin string) (*Journal, error) {
	id, err := s.StartRun(storyID, origin)
	if err != nil {
		return nil, err
	}
	return &Journal{store: s, runID: id}, nil
}

// RunID returns the journal's run ID.
func (j *Journal) RunID() string {
	if j == nil {
		return ""
	}
	return j.runID
}

// RecordTransition implements session.Recorder.
func (j *Journal) RecordTransition(from, to core.GameState, at time.Time) error {
	if j == nil {
		return nil
	}
	return j.store.AppendTransition(j.runID, from, to, at)
}

// Finish closes the run.
func (j *Journal) Finish(reason string) error {
	if j == nil {
		return nil
	}
	return j.store.FinishRun(j.runID, reason)
}

// Ensure Journal implements session.Recorder
var _ session.Recorder = (*Journal)(nil)
