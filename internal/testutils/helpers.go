package testutils

import (
	"testing"

	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SmallWorld returns the classic small example world used throughout the
// test suite. Stacks left to right: [e], [l,g,m], [k], [], [f]; arm at
// column 0, nothing held.
func SmallWorld(t *testing.T) *domain.WorldState {
	t.Helper()

	w := &domain.WorldState{
		Objects: map[string]domain.Object{
			"e": {Form: domain.FormBall, Size: domain.SizeLarge, Color: "white"},
			"f": {Form: domain.FormBall, Size: domain.SizeSmall, Color: "black"},
			"g": {Form: domain.FormTable, Size: domain.SizeLarge, Color: "blue"},
			"k": {Form: domain.FormBox, Size: domain.SizeLarge, Color: "yellow"},
			"l": {Form: domain.FormBox, Size: domain.SizeLarge, Color: "red"},
			"m": {Form: domain.FormBox, Size: domain.SizeSmall, Color: "blue"},
		},
		Stacks: [][]string{{"e"}, {"l", "g", "m"}, {"k"}, {}, {"f"}},
		Arm:    0,
	}
	require.NoError(t, w.Validate(), "small world must satisfy the state invariants")
	return w
}

// DisjunctSet renders a DNF as the set of its conjunction strings,
// for order-insensitive comparison.
func DisjunctSet(d domain.DNF) map[string]bool {
	set := make(map[string]bool, len(d))
	for _, c := range d {
		set[c.String()] = true
	}
	return set
}
