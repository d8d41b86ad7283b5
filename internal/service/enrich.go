package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UnknownName is the degraded placeholder for an identity that could not be
// resolved during enrichment.
const UnknownName = "Unknown"

// resolveNames fetches a display name for every id, fanning out with a
// bounded number of concurrent lookups. The returned slice matches the order
// of ids. A failed or slow lookup degrades that entry to UnknownName and
// never affects its siblings or the caller's response.
func (s *HistoryService) resolveNames(ctx context.Context, ids []int64) []string {
	names := make([]string, len(ids))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.lookupLimit)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			user, err := s.users.GetByID(groupCtx, id)
			if err != nil {
				s.log.Warn("identity lookup failed during enrichment",
					zap.Int64("userId", id),
					zap.Error(err),
				)
				names[i] = UnknownName
				return nil
			}
			names[i] = user.FullName()
			return nil
		})
	}
	// Workers never return errors; failures degrade in place.
	_ = group.Wait()
	return names
}
