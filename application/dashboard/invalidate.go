package dashboard

import (
	"context"

	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	userrepo "github.com/muhammadheryan/telecom-distribution/repository/user"
)

// InvalidateStats drops the cached stats of userIDs and of every distributor,
// whose counters span the whole system. When the distributor lookup fails the
// given users are still invalidated and the lookup error is returned.
func InvalidateStats(ctx context.Context, users userrepo.UserRepository, cache redisrepo.Repository, userIDs ...uint64) error {
	distributors, listErr := users.List(ctx, &model.UserListFilter{Role: constant.RoleDistributor})

	seen := make(map[uint64]struct{}, len(userIDs)+len(distributors))
	ids := make([]uint64, 0, len(userIDs)+len(distributors))
	add := func(id uint64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, id := range userIDs {
		add(id)
	}
	for i := range distributors {
		add(distributors[i].ID)
	}

	if len(ids) > 0 {
		if err := cache.InvalidateStats(ctx, ids...); err != nil {
			return err
		}
	}
	return listErr
}
