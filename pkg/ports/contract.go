package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWorldStoreContract runs a suite of tests to verify that a WorldStore
// implementation adheres to the defined interface contract.
func RunWorldStoreContract(t *testing.T, store WorldStore) {
	ctx := context.Background()
	worldID := "contract-test-world-" + time.Now().Format("20060102150405")

	world := func() *domain.WorldState {
		return &domain.WorldState{
			Objects: map[string]domain.Object{
				"a": {Form: domain.FormBall, Size: domain.SizeSmall, Color: "black"},
				"b": {Form: domain.FormBox, Size: domain.SizeLarge, Color: "yellow"},
			},
			Stacks: [][]string{{"b", "a"}, {}},
			Arm:    1,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		w := world()
		err := store.Save(ctx, worldID, w)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, worldID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, w.ID(), loaded.ID())
		assert.Equal(t, domain.FormBall, loaded.Objects["a"].Form)

		// The stored copy must be isolated from later caller mutations.
		w.Stacks[1] = append(w.Stacks[1], "zz")
		again, err := store.Load(ctx, worldID)
		require.NoError(t, err)
		assert.Empty(t, again.Stacks[1], "store must keep its own copy")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+worldID)
		assert.ErrorIs(t, err, domain.ErrWorldNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, worldID, world()))
		require.NoError(t, store.Delete(ctx, worldID))

		_, err := store.Load(ctx, worldID)
		assert.ErrorIs(t, err, domain.ErrWorldNotFound, "Load after Delete should return ErrWorldNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := worldID + "-1"
		id2 := worldID + "-2"
		_ = store.Save(ctx, id1, world())
		_ = store.Save(ctx, id2, world())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		worlds, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, worlds, id1)
		assert.Contains(t, worlds, id2)
	})
}
