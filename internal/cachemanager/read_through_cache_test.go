package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type renderInput struct {
	Text  string
	Width int
}

func countingRender(calls *int) func(context.Context, renderInput) (string, error) {
	return func(_ context.Context, in renderInput) (string, error) {
		*calls++
		if in.Text == "" {
			return "", errors.New("nothing to render")
		}
		return in.Text + "!", nil
	}
}

func TestReadThroughCache_Get_ComputesOnce(t *testing.T) {
	var calls int
	store := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, string, renderInput](store, countingRender(&calls), false)

	for range 3 {
		got, err := rtc.Get(context.Background(), "fuel:40", renderInput{Text: "fuel", Width: 40}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "fuel!", got)
	}
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_Get_SkipCache(t *testing.T) {
	var calls int
	store := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, string, renderInput](store, countingRender(&calls), true)

	for range 2 {
		_, err := rtc.Get(context.Background(), "fuel:40", renderInput{Text: "fuel"}, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 2, calls)
	require.Zero(t, store.Len())
}

func TestReadThroughCache_Get_ErrorNotCached(t *testing.T) {
	var calls int
	store := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, string, renderInput](store, countingRender(&calls), false)

	_, err := rtc.Get(context.Background(), "empty", renderInput{}, time.Minute)
	require.Error(t, err)
	_, err = rtc.Get(context.Background(), "empty", renderInput{}, time.Minute)
	require.Error(t, err)
	require.Equal(t, 2, calls)
	require.Zero(t, store.Len())
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	var calls int
	store := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, string, renderInput](store, countingRender(&calls), false)

	got, err := rtc.GetWithRefresh(context.Background(), "k", renderInput{Text: "cargo"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "cargo!", got)

	got, err = rtc.GetWithRefresh(context.Background(), "k", renderInput{Text: "cargo"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "cargo!", got)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_StatsAndForget(t *testing.T) {
	var calls int
	store := NewInMemoryCacheManager[string, string]("markdown", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, string, renderInput](store, countingRender(&calls), false)
	ctx := context.Background()

	_, _ = rtc.Get(ctx, "fuel:40", renderInput{Text: "fuel"}, time.Minute)
	_, _ = rtc.Get(ctx, "fuel:40", renderInput{Text: "fuel"}, time.Minute)
	require.Equal(t, Stats{Hits: 1, Misses: 1}, rtc.Stats())

	rtc.Forget(ctx, "fuel:40")
	require.Zero(t, store.Len())
	_, _ = rtc.Get(ctx, "fuel:40", renderInput{Text: "fuel"}, time.Minute)
	require.Equal(t, 2, calls)
	require.Equal(t, Stats{Hits: 1, Misses: 2}, rtc.Stats())
}
