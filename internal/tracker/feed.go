package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nextstep/nextstep-api/internal/db"
)

// Composer builds the personalized job feed by excluding postings the user
// has already decided on.
type Composer struct {
	store DecisionStore
}

// NewComposer creates a Composer backed by the given store
func NewComposer(store DecisionStore) *Composer {
	return &Composer{store: store}
}

// Compose filters candidates down to the jobs the user has not acted on,
// preserving their relative order. A nil userID means the caller is
// anonymous (no credential, or an invalid credential on a read path) and
// gets the candidate list back unchanged.
//
// The result is a snapshot: a decision submitted while the feed is being
// composed may still show up in it. That staleness is accepted; the
// apply-uniqueness constraint is the only hard guarantee.
func (c *Composer) Compose(ctx context.Context, userID *uuid.UUID, candidates []db.Job) ([]db.Job, error) {
	if userID == nil {
		return candidates, nil
	}

	decided, err := c.store.ListDecidedJobIDs(ctx, *userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load decided jobs: %w", err)
	}
	if len(decided) == 0 {
		return candidates, nil
	}

	feed := make([]db.Job, 0, len(candidates))
	for _, job := range candidates {
		if _, acted := decided[job.ID]; acted {
			continue
		}
		feed = append(feed, job)
	}
	return feed, nil
}
