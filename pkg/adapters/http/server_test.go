package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/shrdlite"
	httpAdapter "github.com/aretw0/shrdlite/pkg/adapters/http"
	"github.com/aretw0/shrdlite/pkg/adapters/memory"
	"github.com/aretw0/shrdlite/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler, err := httpAdapter.NewHandler(
		shrdlite.New(),
		session.NewManager(memory.NewStore()),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServer_WorldLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/worlds", `{"id": "demo", "builtin": "small"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "demo", created.ID)

	resp, err := http.Get(srv.URL + "/worlds/demo")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var world struct {
		Stacks [][]string `json:"stacks"`
	}
	decodeBody(t, resp, &world)
	assert.Len(t, world.Stacks, 5)

	resp, err = http.Get(srv.URL + "/worlds")
	require.NoError(t, err)
	var list struct {
		Worlds []string `json:"worlds"`
	}
	decodeBody(t, resp, &list)
	assert.Contains(t, list.Worlds, "demo")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/worlds/demo", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/worlds/demo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Command(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/worlds", `{"id": "w", "builtin": "small"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/worlds/w/command", `{
		"apply": true,
		"parses": {
			"command": "take",
			"entity": {"quantifier": "a", "object": {"form": "ball", "color": "black"}}
		}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Results []struct {
			Goal string   `json:"goal"`
			Plan []string `json:"plan"`
		} `json:"results"`
		World struct {
			Holding string `json:"holding"`
		} `json:"world"`
	}
	decodeBody(t, resp, &result)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "holding(f)", result.Results[0].Goal)
	assert.NotEmpty(t, result.Results[0].Plan)
	assert.Equal(t, "f", result.World.Holding, "apply=true should persist the replayed world")
}

func TestServer_CommandErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/worlds", `{"id": "w", "builtin": "small"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("unknown world", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/worlds/ghost/command", `{"parses": {"command": "take", "entity": {"quantifier": "a", "object": {"form": "ball"}}}}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no valid interpretation", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/worlds/w/command", `{
			"parses": {
				"command": "move",
				"entity": {"quantifier": "a", "object": {"form": "ball"}},
				"location": {"relation": "ontop", "entity": {"quantifier": "a", "object": {"form": "table"}}}
			}
		}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("request validation", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/worlds/w/command", `{"apply": true}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_CreateWorldValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/worlds", `{"world": {"objects": {"a": {"form": "ball"}}, "stacks": [["a"], ["a"]]}}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "duplicated identifier must be rejected")
}

func TestServer_OpenAPIDocument(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
