package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabiplan/internal/models/response_models"
)

// scriptedGenerator returns canned responses in order and records prompts.
type scriptedGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	i := g.calls - 1
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	return g.responses[i], nil
}

func TestEstimateFareCachesResult(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"1500"}}
	svc := NewTransportService(gen, NewFareCache(16, 0))

	first := svc.EstimateFare(context.Background(), "東京駅", "京都駅", "TRANSIT")
	second := svc.EstimateFare(context.Background(), "東京駅", "京都駅", "TRANSIT")

	assert.Equal(t, "1500円", first)
	assert.Equal(t, "1500円", second)
	assert.Equal(t, 1, gen.calls)
}

func TestEstimateFareNonNumericAnswerCached(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"およそ1500円です"}}
	cache := NewFareCache(16, 0)
	svc := NewTransportService(gen, cache)

	got := svc.EstimateFare(context.Background(), "A", "B", "DRIVING")

	assert.Equal(t, FareErrorMarker, got)
	assert.Equal(t, 1, cache.Len())

	// the marker comes from cache, no second call
	got = svc.EstimateFare(context.Background(), "A", "B", "DRIVING")
	assert.Equal(t, FareErrorMarker, got)
	assert.Equal(t, 1, gen.calls)
}

func TestEstimateFareGenerationFailureNotCached(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("boom")}
	cache := NewFareCache(16, 0)
	svc := NewTransportService(gen, cache)

	got := svc.EstimateFare(context.Background(), "A", "B", "WALKING")

	assert.Equal(t, FareUnavailableMarker, got)
	assert.Equal(t, 0, cache.Len())

	// a later call retries instead of serving the failure
	svc.EstimateFare(context.Background(), "A", "B", "WALKING")
	assert.Equal(t, 2, gen.calls)
}

func TestEstimateFareDistinguishesModes(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"1500", "3200"}}
	svc := NewTransportService(gen, NewFareCache(16, 0))

	transit := svc.EstimateFare(context.Background(), "A", "B", "TRANSIT")
	driving := svc.EstimateFare(context.Background(), "A", "B", "DRIVING")

	assert.Equal(t, "1500円", transit)
	assert.Equal(t, "3200円", driving)
	assert.Equal(t, 2, gen.calls)
}

func TestFareCacheEvictsOldestWhenFull(t *testing.T) {
	cache := NewFareCache(2, 0)

	cache.Set("a", "1")
	cache.Set("b", "2")
	cache.Set("c", "3")

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	v, ok := cache.Get("c")
	require.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestFareCacheTTL(t *testing.T) {
	cache := NewFareCache(16, time.Nanosecond)
	cache.Set("a", "1")
	time.Sleep(time.Millisecond)

	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestEstimateTransportCost(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"bare number", "12000", 12000},
		{"number with noise", "約12,000円です", 12000},
		{"no digits", "わかりません", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{responses: []string{tt.response}}
			svc := NewTransportService(gen, NewFareCache(16, 0))

			got := svc.EstimateTransportCost(context.Background(),
				response_models.Coordinates{Lat: 35.68, Lng: 139.76}, "京都")

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateTransportCostFailureIsZero(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("quota")}
	svc := NewTransportService(gen, NewFareCache(16, 0))

	got := svc.EstimateTransportCost(context.Background(),
		response_models.Coordinates{Lat: 35.68, Lng: 139.76}, "京都")

	assert.Equal(t, 0, got)
}

func TestEstimateTransportCostPromptCarriesInputs(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"8000"}}
	svc := NewTransportService(gen, NewFareCache(16, 0))

	svc.EstimateTransportCost(context.Background(),
		response_models.Coordinates{Lat: 35.68, Lng: 139.76}, "札幌")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "35.68")
	assert.Contains(t, gen.prompts[0], "札幌")
}
