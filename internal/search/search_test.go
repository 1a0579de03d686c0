package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrench/internal/config"
	"wrench/internal/log"
)

type fakeProvider struct {
	gotQuery string
	gotN     int
	results  []Result
	err      error
}

func (p *fakeProvider) Search(ctx context.Context, query string, n int) ([]Result, error) {
	p.gotQuery = query
	p.gotN = n
	return p.results, p.err
}

func TestSimulateIsDeterministic(t *testing.T) {
	first := Simulate("my headlight is broken")
	second := Simulate("my headlight is broken")
	assert.Equal(t, first, second)
}

func TestSimulateHeadlightQueries(t *testing.T) {
	results := Simulate("Headlamp not working")
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Title, "Headlights")
	assert.Equal(t, "https://example.com/headlight-repair", results[0].URL)
}

func TestSimulateBrakeQueries(t *testing.T) {
	results := Simulate("squeaky BRAKE pedal")
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Title, "Brake Pads")
}

func TestSimulateGenericFallback(t *testing.T) {
	results := Simulate("weird rattle under the hood")
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Title, "Common Car Problems")
}

func TestEngineWithoutKeySimulates(t *testing.T) {
	cfg := &config.Config{SearchProvider: config.ProviderSerpAPI}
	engine, err := NewEngine(cfg, log.NewNop())
	require.NoError(t, err)

	results := engine.Search(context.Background(), "brake pads", 2)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Title, "Brake")
	}
	assert.Equal(t, Simulate("brake pads"), results)
}

func TestEnginePrefixesLiveQueries(t *testing.T) {
	p := &fakeProvider{results: []Result{{Title: "hit"}}}
	engine := NewEngineWithProvider(p, log.NewNop())

	results := engine.Search(context.Background(), "brake noise", 2)

	assert.Equal(t, "car repair brake noise", p.gotQuery)
	assert.Equal(t, 2, p.gotN)
	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0].Title)
}

func TestEngineDefaultsResultCount(t *testing.T) {
	p := &fakeProvider{results: []Result{{Title: "hit"}}}
	engine := NewEngineWithProvider(p, log.NewNop())

	engine.Search(context.Background(), "anything", 0)
	assert.Equal(t, defaultNumResults, p.gotN)
}

func TestEngineProviderErrorFallsBack(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	engine := NewEngineWithProvider(p, log.NewNop())

	results := engine.Search(context.Background(), "headlight out", 3)
	assert.Equal(t, Simulate("headlight out"), results)
}

func TestEngineEmptyResultsFallBack(t *testing.T) {
	p := &fakeProvider{}
	engine := NewEngineWithProvider(p, log.NewNop())

	results := engine.Search(context.Background(), "alternator whine", 3)
	assert.NotEmpty(t, results)
	assert.Equal(t, Simulate("alternator whine"), results)
}

func TestNewEngineProviderSelection(t *testing.T) {
	cases := []struct {
		provider string
		want     any
	}{
		{config.ProviderSerpAPI, &serpAPI{}},
		{config.ProviderSerper, &serper{}},
		{config.ProviderBrave, &brave{}},
		{config.ProviderGoogle, &googleCSE{}},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := &config.Config{
				SearchAPIKey:   "key",
				SearchProvider: tc.provider,
				GoogleCSEID:    "cse",
			}
			engine, err := NewEngine(cfg, log.NewNop())
			require.NoError(t, err)
			assert.IsType(t, tc.want, engine.provider)
		})
	}
}
