package batch

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight per-item mutations.
const DefaultConcurrency = 8

// ItemResult is the outcome of one item of a bulk mutation.
type ItemResult struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// Result summarizes a bulk mutation. Earlier successes are never undone
// when a later item fails.
type Result struct {
	Items     []ItemResult `json:"items"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// Run applies fn to every id concurrently. Item failures are recorded in
// the result and do not cancel the remaining items.
func Run(ctx context.Context, ids []uuid.UUID, limit int, fn func(ctx context.Context, id uuid.UUID) error) Result {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	items := make([]ItemResult, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			items[i] = ItemResult{ID: id, Success: true}
			if err := fn(ctx, id); err != nil {
				items[i].Success = false
				items[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Items: items}
	for _, it := range items {
		if it.Success {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}
	return res
}
