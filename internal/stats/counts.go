// internal/stats/counts.go
package stats

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imgsafe-backend/internal/models"
)

// TokenCountResult is the settled outcome of one per-token usage fetch.
// OK=false means the count could not be obtained; the token is then absent
// from the count map but never aborts the other fetches.
type TokenCountResult struct {
	TokenID string `json:"token_id"`
	Count   int    `json:"count"`
	OK      bool   `json:"ok"`
}

// UsageFetcher retrieves the usage records for one token. Supplied by the
// auth layer; only this capability can fail.
type UsageFetcher func(ctx context.Context, tokenID string) ([]models.UsageRecord, error)

// FetchTokenCounts issues one fetch per token concurrently and waits for
// every one to settle. A failed fetch is logged and recorded as OK=false in
// its own slot; there is no retry and no short-circuit. Results are returned
// in input order.
//
// No timeout is applied at this layer: a fetcher that never returns holds
// its slot open while the others complete. Callers bound the context.
func FetchTokenCounts(ctx context.Context, tokenIDs []string, fetch UsageFetcher) []TokenCountResult {
	results := make([]TokenCountResult, len(tokenIDs))

	var g errgroup.Group
	for i, id := range tokenIDs {
		i, id := i, id
		g.Go(func() error {
			records, err := fetch(ctx, id)
			if err != nil {
				zap.L().Warn("usage count fetch failed",
					zap.String("token", id),
					zap.Error(err))
				results[i] = TokenCountResult{TokenID: id}
				return nil
			}
			results[i] = TokenCountResult{TokenID: id, Count: len(records), OK: true}
			return nil
		})
	}
	// Workers never return errors; failures live in their result slots.
	_ = g.Wait()

	return results
}

// CountMap reduces settled results to the token → count mapping shown in the
// dashboard. It contains exactly the tokens whose fetch succeeded.
func CountMap(results []TokenCountResult) map[string]int {
	counts := make(map[string]int, len(results))
	for _, res := range results {
		if res.OK {
			counts[res.TokenID] = res.Count
		}
	}
	return counts
}
