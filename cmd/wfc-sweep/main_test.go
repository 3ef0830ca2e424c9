package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllScenarios(t *testing.T) {
	sc := allScenarios()
	require.Len(t, sc, 8)
	seen := map[scenario]bool{}
	for _, s := range sc {
		require.False(t, seen[s])
		seen[s] = true
	}
}

func TestSweepCountsEveryRun(t *testing.T) {
	open, err := newOpener("checker", "")
	require.NoError(t, err)
	summaries, err := sweep(open, allScenarios(), 3, 4, 6, 5)
	require.NoError(t, err)
	require.Len(t, summaries, 8)
	for _, s := range summaries {
		require.Equal(t, 3, s.runs)
		require.Equal(t, 3, s.exact, "the checker weave never needs recovery: %s", s.scenario)
	}

	var buf bytes.Buffer
	report(&buf, summaries, 0)
	require.Contains(t, buf.String(), "exact=3/3")
}

func TestSweepFromFile(t *testing.T) {
	open, err := newOpener("", "../../internal/config/testdata/coast.hcl")
	require.NoError(t, err)
	summaries, err := sweep(open, allScenarios()[:1], 2, 1, 5, 5)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 2, summaries[0].runs)
}

func TestNewOpenerUnknown(t *testing.T) {
	_, err := newOpener("nope", "")
	require.ErrorContains(t, err, "unknown tileset")
}
