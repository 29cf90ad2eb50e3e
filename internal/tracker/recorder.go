package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nextstep/nextstep-api/internal/db"
)

// DecisionStore is the storage the engine needs. *db.DB satisfies it; tests
// inject in-memory implementations. The store, not the engine, is the
// serialization point: InsertDecision must reject a second apply for the
// same (user, job) pair even under concurrent calls.
type DecisionStore interface {
	ExistsApply(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	InsertDecision(ctx context.Context, userID, jobID uuid.UUID, mode db.Mode) (*db.Decision, error)
	ListDecidedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// Recorder validates and commits user decisions
type Recorder struct {
	store DecisionStore
}

// NewRecorder creates a Recorder backed by the given store
func NewRecorder(store DecisionStore) *Recorder {
	return &Recorder{store: store}
}

// Record commits a decision for the pair. On success exactly one new row
// exists; on any error no row was written by this call.
//
// The ExistsApply pre-check only provides the common-case conflict answer
// without an insert attempt. Correctness under races does not depend on it:
// two concurrent applies both pass the check, and the store's uniqueness
// constraint still lets exactly one insert through.
func (r *Recorder) Record(ctx context.Context, userID, jobID uuid.UUID, mode db.Mode) (*db.Decision, error) {
	if !mode.Valid() {
		return nil, &ValidationError{
			Field:   "swipeMode",
			Message: fmt.Sprintf("unrecognized mode %q", mode),
		}
	}

	if mode == db.ModeApply {
		exists, err := r.store.ExistsApply(ctx, userID, jobID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing application: %w", err)
		}
		if exists {
			return nil, &ConflictError{UserID: userID, JobID: jobID}
		}
	}

	d, err := r.store.InsertDecision(ctx, userID, jobID, mode)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateApply):
			// Lost the race between check and insert.
			return nil, &ConflictError{UserID: userID, JobID: jobID}
		case errors.Is(err, db.ErrUnknownJob):
			return nil, &NotFoundError{Kind: "job", ID: jobID}
		case errors.Is(err, db.ErrUnknownUser):
			return nil, &NotFoundError{Kind: "user", ID: userID}
		}
		return nil, err
	}
	return d, nil
}
