package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nextstep/nextstep-api/internal/db"
)

// memStore is an in-memory DecisionStore with the same conditional-insert
// semantics as the Postgres partial unique index: at most one apply row per
// (user, job), enforced atomically inside InsertDecision.
type memStore struct {
	mu        sync.Mutex
	decisions []db.Decision
	failWith  error // when set, every call fails with this error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) ExistsApply(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, d := range s.decisions {
		if d.UserID == userID && d.JobID == jobID && d.Mode == db.ModeApply {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) InsertDecision(_ context.Context, userID, jobID uuid.UUID, mode db.Mode) (*db.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if mode == db.ModeApply {
		for _, d := range s.decisions {
			if d.UserID == userID && d.JobID == jobID && d.Mode == db.ModeApply {
				return nil, db.ErrDuplicateApply
			}
		}
	}
	d := db.Decision{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     jobID,
		Mode:      mode,
		Status:    mode.Status(),
		CreatedAt: time.Now(),
	}
	s.decisions = append(s.decisions, d)
	return &d, nil
}

func (s *memStore) ListDecidedJobIDs(_ context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	decided := make(map[uuid.UUID]struct{})
	for _, d := range s.decisions {
		if d.UserID == userID {
			decided[d.JobID] = struct{}{}
		}
	}
	return decided, nil
}

// applyRows returns all apply decisions for the pair
func (s *memStore) applyRows(userID, jobID uuid.UUID) []db.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []db.Decision
	for _, d := range s.decisions {
		if d.UserID == userID && d.JobID == jobID && d.Mode == db.ModeApply {
			rows = append(rows, d)
		}
	}
	return rows
}

func (s *memStore) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions)
}
