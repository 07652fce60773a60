package rulecache

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/franklinfx2/master-trader-sub000/rules"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

// Cache fronts a Miner with a Store. Store failures degrade to plain mining.
type Cache struct {
	miner  *rules.Miner
	store  Store
	logger zerolog.Logger

	hits, misses, errs atomic.Int64
}

// Stats counts cache outcomes since the Cache was created.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// New returns a Cache. A nil store disables caching.
func New(miner *rules.Miner, store Store, logger zerolog.Logger) *Cache {
	return &Cache{
		miner:  miner,
		store:  store,
		logger: logger.With().Str("component", "rulecache").Logger(),
	}
}

// Mine returns the cached report for trades or mines and stores a new one.
// The only error is a done ctx.
func (c *Cache) Mine(ctx context.Context, trades []trade.Record) (rules.Report, error) {
	if err := ctx.Err(); err != nil {
		return rules.Report{}, err
	}
	if c.store == nil {
		return c.miner.Mine(trades), nil
	}

	key, err := Fingerprint(c.miner.Thresholds(), trades)
	if err != nil {
		c.errs.Add(1)
		c.logger.Warn().Err(err).Msg("fingerprint failed, mining without cache")
		return c.miner.Mine(trades), nil
	}

	rep, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.errs.Add(1)
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	case ok:
		c.hits.Add(1)
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return rep, nil
	}

	c.misses.Add(1)
	rep = c.miner.Mine(trades)
	if err := c.store.Set(ctx, key, rep); err != nil {
		c.errs.Add(1)
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return rep, nil
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errs.Load(),
	}
}
