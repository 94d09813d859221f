package quantity

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
)

// Resolver answers "how many of component X does the user have in list Y",
// caching each answer by its lookup key until the next relevant mutation.
type Resolver struct {
	client restapi.Client
	cache  *cache.Cache
}

func NewResolver(client restapi.Client, c *cache.Cache) *Resolver {
	return &Resolver{client: client, cache: c}
}

func cacheKey(opts restapi.ComponentQuantityOpts) cache.Key {
	params := fmt.Sprintf("%s/%d", opts.List, opts.ComponentID)
	if opts.BomItemPK != nil && opts.ModulePK != nil {
		params = fmt.Sprintf("%s/%d/%d", params, *opts.BomItemPK, *opts.ModulePK)
	}
	return cache.Key{Resource: constants.ResourceComponentQuantity, Params: params}
}

func (r *Resolver) Resolve(ctx context.Context, opts restapi.ComponentQuantityOpts) (int64, error) {
	v, err := r.cache.Get(ctx, cacheKey(opts), func(ctx context.Context) (interface{}, error) {
		qty, err := r.client.ComponentQuantity(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("client.ComponentQuantity: %w", err)
		}
		return qty, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

// ResolveMany resolves several lookups concurrently. Either every lookup
// succeeds or the first error wins and the partial results are discarded.
func (r *Resolver) ResolveMany(ctx context.Context, lookups []restapi.ComponentQuantityOpts) (map[domain.ComponentID]int64, error) {
	quantities := make(map[domain.ComponentID]int64, len(lookups))
	quantitiesMx := sync.Mutex{}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, opts := range lookups {
		opts := opts
		eg.Go(func() error {
			qty, err := r.Resolve(egCtx, opts)
			if err != nil {
				return fmt.Errorf("resolve, component-%d: %w", opts.ComponentID, err)
			}

			quantitiesMx.Lock()
			defer quantitiesMx.Unlock()
			quantities[opts.ComponentID] = qty
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	return quantities, nil
}
