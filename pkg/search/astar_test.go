package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/shrdlite/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edgeList is a tiny explicit graph for exercising the search.
type edgeList map[string][]search.Edge[string]

func (g edgeList) Outgoing(n string) []search.Edge[string] { return g[n] }
func (g edgeList) NodeID(n string) string                  { return n }

func TestAStar_OptimalPath(t *testing.T) {
	// Two routes a->d: the direct edge costs 10, the detour via b,c costs 3.
	g := edgeList{
		"a": {{To: "d", Cost: 10}, {To: "b", Cost: 1}},
		"b": {{To: "c", Cost: 1}},
		"c": {{To: "d", Cost: 1}},
	}

	res, err := search.AStar[string](context.Background(), g, "a",
		func(n string) bool { return n == "d" },
		func(string) float64 { return 0 },
		0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, res.Path)
	assert.Equal(t, 3.0, res.Cost)
}

func TestAStar_ReweighsOpenNodes(t *testing.T) {
	// c is first reached expensively via a direct edge, then cheaply via b.
	// The stale open entry must be skipped, not followed.
	g := edgeList{
		"a": {{To: "b", Cost: 1}, {To: "c", Cost: 5}},
		"b": {{To: "c", Cost: 1}},
		"c": {{To: "goal", Cost: 5}},
	}

	res, err := search.AStar[string](context.Background(), g, "a",
		func(n string) bool { return n == "goal" },
		func(string) float64 { return 0 },
		0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "goal"}, res.Path)
	assert.Equal(t, 7.0, res.Cost)
}

func TestAStar_HeuristicGuides(t *testing.T) {
	// Straight-line grid; an exact heuristic should expand only the path.
	g := edgeList{
		"0": {{To: "1", Cost: 1}, {To: "x1", Cost: 1}},
		"1": {{To: "2", Cost: 1}, {To: "x2", Cost: 1}},
		"2": {{To: "3", Cost: 1}},
	}
	dist := map[string]float64{"0": 3, "1": 2, "2": 1, "3": 0, "x1": 100, "x2": 100}

	res, err := search.AStar[string](context.Background(), g, "0",
		func(n string) bool { return n == "3" },
		func(n string) float64 { return dist[n] },
		0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Cost)
	assert.LessOrEqual(t, res.Expanded, 3, "an exact heuristic should not expand off the path")
}

func TestAStar_NoPath(t *testing.T) {
	g := edgeList{"a": {{To: "b", Cost: 1}}}

	_, err := search.AStar[string](context.Background(), g, "a",
		func(n string) bool { return n == "unreachable" },
		func(string) float64 { return 0 },
		0)
	assert.ErrorIs(t, err, search.ErrNoPath)
}

func TestAStar_GoalAtStart(t *testing.T) {
	g := edgeList{}
	res, err := search.AStar[string](context.Background(), g, "a",
		func(n string) bool { return n == "a" },
		func(string) float64 { return 0 },
		0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Path)
	assert.Equal(t, 0.0, res.Cost)
}

// loopGraph never reaches a goal and never drains; only the timeout stops it.
type loopGraph struct{}

func (loopGraph) Outgoing(n string) []search.Edge[string] {
	return []search.Edge[string]{{To: n + "x", Cost: 1}}
}
func (loopGraph) NodeID(n string) string { return n }

func TestAStar_Timeout(t *testing.T) {
	_, err := search.AStar[string](context.Background(), loopGraph{}, "a",
		func(string) bool { return false },
		func(string) float64 { return 0 },
		20*time.Millisecond)
	assert.ErrorIs(t, err, search.ErrTimeout)
}

func TestAStar_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := search.AStar[string](ctx, loopGraph{}, "a",
		func(string) bool { return false },
		func(string) float64 { return 0 },
		0)
	assert.ErrorIs(t, err, context.Canceled)
}
