package rulecache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franklinfx2/master-trader-sub000/rules"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

func sampleTrades() []trade.Record {
	var out []trade.Record
	for i := 0; i < 20; i++ {
		session, outcome := "London", trade.OutcomeWin
		if i%2 == 1 {
			session = "Asia"
		}
		if i%5 == 0 || session == "Asia" && i%3 != 0 {
			outcome = trade.OutcomeLoss
		}
		out = append(out, trade.Record{
			TradeID:    fmt.Sprintf("T%02d", i),
			Outcome:    outcome,
			Session:    session,
			ExecutedAt: time.Date(2024, 5, 1+i, 9, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestFingerprintStable(t *testing.T) {
	t.Parallel()

	th := rules.DefaultThresholds()
	a, err := Fingerprint(th, sampleTrades())
	require.NoError(t, err)
	b, err := Fingerprint(th, sampleTrades())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestFingerprintChanges(t *testing.T) {
	t.Parallel()

	th := rules.DefaultThresholds()
	base, err := Fingerprint(th, sampleTrades())
	require.NoError(t, err)

	edited := sampleTrades()
	edited[3].Grade = "B"
	k1, err := Fingerprint(th, edited)
	require.NoError(t, err)
	assert.NotEqual(t, base, k1, "field edit")

	k2, err := Fingerprint(th, sampleTrades()[1:])
	require.NoError(t, err)
	assert.NotEqual(t, base, k2, "trade removed")

	th.MinSample = 6
	th.MinRequiredSample = 12
	k3, err := Fingerprint(th, sampleTrades())
	require.NoError(t, err)
	assert.NotEqual(t, base, k3, "threshold change")
}

func TestFingerprintRejectsNaN(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()
	trades[0].RMultiple = trade.Float(math.NaN())
	_, err := Fingerprint(rules.DefaultThresholds(), trades)
	assert.Error(t, err)
}

func TestCacheMemoryHitAndMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	c := New(rules.New(), store, zerolog.Nop())

	first, err := c.Mine(ctx, sampleTrades())
	require.NoError(t, err)
	second, err := c.Mine(ctx, sampleTrades())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, rules.Mine(sampleTrades()), first)
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())
	assert.Equal(t, 1, store.Len())

	_, err = c.Mine(ctx, sampleTrades()[:10])
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Stats().Misses)
	assert.Equal(t, 2, store.Len())
}

func TestCacheHitIsUnaffectedByCallerEdits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(rules.New(), NewMemoryStore(), zerolog.Nop())

	first, err := c.Mine(ctx, sampleTrades())
	require.NoError(t, err)
	require.NotEmpty(t, first.DoMore)
	want := first.DoMore[0].Statement

	first.DoMore[0].Statement = "edited"
	first.StopDoing = append(first.StopDoing, rules.Rule{Statement: "extra"})

	second, err := c.Mine(ctx, sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, want, second.DoMore[0].Statement)
	assert.Equal(t, rules.Mine(sampleTrades()), second)

	second.DoMore[0].Statement = "edited again"
	third, err := c.Mine(ctx, sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, want, third.DoMore[0].Statement)
	assert.Equal(t, Stats{Hits: 2, Misses: 1}, c.Stats())
}

func TestCacheWithoutStore(t *testing.T) {
	t.Parallel()

	c := New(rules.New(), nil, zerolog.Nop())
	rep, err := c.Mine(context.Background(), sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, rules.Mine(sampleTrades()), rep)
	assert.Equal(t, Stats{}, c.Stats())
}

func TestCacheCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(rules.New(), NewMemoryStore(), zerolog.Nop()).Mine(ctx, sampleTrades())
	assert.ErrorIs(t, err, context.Canceled)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (rules.Report, bool, error) {
	return rules.Report{}, false, errors.New("backend down")
}

func (failingStore) Set(context.Context, string, rules.Report) error {
	return errors.New("backend down")
}

func TestCacheDegradesOnStoreErrors(t *testing.T) {
	t.Parallel()

	c := New(rules.New(), failingStore{}, zerolog.Nop())
	rep, err := c.Mine(context.Background(), sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, rules.Mine(sampleTrades()), rep)
	assert.Equal(t, Stats{Misses: 1, Errors: 2}, c.Stats())
}

func TestCacheDegradesWhenRedisIsDown(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := New(rules.New(), NewRedisStore(client, time.Minute), zerolog.Nop())
	rep, err := c.Mine(context.Background(), sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, rules.StatusOK, rep.Status)
	assert.Equal(t, int64(2), c.Stats().Errors)
}
