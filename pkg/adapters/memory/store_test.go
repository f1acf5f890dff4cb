package memory_test

import (
	"testing"

	"github.com/aretw0/shrdlite/pkg/adapters/memory"
	"github.com/aretw0/shrdlite/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunWorldStoreContract(t, store)
}
