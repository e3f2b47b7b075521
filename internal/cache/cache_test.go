package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunfutures/internal/types"
)

func testRequestParts() (types.Location, types.PlantConfig, types.LossConfig) {
	loc := types.Location{Name: "vegas", Latitude: 36.1699, Longitude: -115.1398}
	plant := types.PlantConfig{DCCapacityKW: 250000, ACCapacityKW: 200000, Mounting: types.MountingSAT}
	plant.ApplyDefaults()
	return loc, plant, types.DefaultLossConfig()
}

func TestFingerprint(t *testing.T) {
	loc, plant, losses := testRequestParts()

	a, err := Fingerprint(loc, plant, losses, nil, 30)
	require.NoError(t, err)
	b, err := Fingerprint(loc, plant, losses, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical inputs must share a fingerprint")
	assert.Len(t, a, 64)

	c, err := Fingerprint(loc, plant, losses, nil, 31)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "horizon change must change the fingerprint")

	plant.ACCapacityKW = 190000
	d, err := Fingerprint(loc, plant, losses, nil, 30)
	require.NoError(t, err)
	assert.NotEqual(t, a, d, "plant change must change the fingerprint")

	e, err := Fingerprint(loc, plant, losses, []types.EquipmentFileRef{{FileID: "x", Filename: "m.pan", Kind: types.FileKindPAN}}, 30)
	require.NoError(t, err)
	assert.NotEqual(t, d, e, "equipment identity must change the fingerprint")
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 50*time.Millisecond))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	time.Sleep(80 * time.Millisecond)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must be treated as a miss")
}

func TestCache_SingleFlight(t *testing.T) {
	cache := New(NewMemoryStore(), time.Minute, slog.Default())
	ctx := context.Background()

	var computations atomic.Int32
	compute := func(context.Context) ([]byte, error) {
		computations.Add(1)
		time.Sleep(30 * time.Millisecond)
		return []byte("result"), nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([][]byte, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, _, err := cache.Do(ctx, "shared", compute)
			assert.NoError(t, err)
			results[i] = value
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), computations.Load(), "identical concurrent requests must share one computation")
	for _, r := range results {
		assert.Equal(t, []byte("result"), r)
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	cache := New(NewMemoryStore(), time.Minute, slog.Default())
	ctx := context.Background()

	var calls atomic.Int32
	failing := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return nil, errors.New("upstream down")
	}

	_, _, err := cache.Do(ctx, "k", failing)
	require.Error(t, err)
	_, _, err = cache.Do(ctx, "k", failing)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "a failed computation must not be served from cache")

	// a later success is cached
	_, hit, err := cache.Do(ctx, "k", func(context.Context) ([]byte, error) {
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)

	value, hit, err := cache.Do(ctx, "k", failing)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("ok"), value)
	assert.Equal(t, int32(2), calls.Load())
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func TestCache_BackendOutageDegradesToDirectComputation(t *testing.T) {
	cache := New(brokenStore{}, time.Minute, slog.Default())

	value, hit, err := cache.Do(context.Background(), "k", func(context.Context) ([]byte, error) {
		return []byte("computed"), nil
	})
	require.NoError(t, err, "a cache outage must never fail the request")
	assert.False(t, hit)
	assert.Equal(t, []byte("computed"), value)
}
