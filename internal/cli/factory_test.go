package cli_test

import (
	"testing"

	"github.com/aretw0/shrdlite/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MemoryStore(t *testing.T) {
	rt, err := cli.Build(cli.Options{})
	require.NoError(t, err)
	defer rt.Close()

	assert.NotNil(t, rt.Engine)
	assert.NotNil(t, rt.Sessions)
	assert.NotNil(t, rt.Registry)
}

func TestBuild_FileStore(t *testing.T) {
	rt, err := cli.Build(cli.Options{Store: "file", DataDir: t.TempDir()})
	require.NoError(t, err)
	defer rt.Close()
	assert.NotNil(t, rt.Sessions)
}

func TestBuild_UnknownStore(t *testing.T) {
	_, err := cli.Build(cli.Options{Store: "etcd"})
	assert.Error(t, err)
}

func TestBuild_RedisWithoutAddress(t *testing.T) {
	t.Setenv("SHRDLITE_REDIS_ADDR", "")
	_, err := cli.Build(cli.Options{Store: "redis"})
	assert.Error(t, err)
}

func TestLoadWorld_Builtin(t *testing.T) {
	w, name, err := cli.LoadWorld("small")
	require.NoError(t, err)
	assert.Equal(t, "small", name)
	assert.Len(t, w.Stacks, 5)
}

func TestLoadWorld_DefaultsToSmall(t *testing.T) {
	_, name, err := cli.LoadWorld("")
	require.NoError(t, err)
	assert.Equal(t, "small", name)
}

func TestLoadWorld_Unknown(t *testing.T) {
	_, _, err := cli.LoadWorld("atlantis")
	assert.Error(t, err)
}
