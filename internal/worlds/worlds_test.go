package worlds_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinWorldsAreValid(t *testing.T) {
	names := worlds.BuiltinNames()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "small")
	assert.Contains(t, names, "medium")

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			def, err := worlds.Builtin(name)
			require.NoError(t, err)
			require.NoError(t, def.World().Validate())
		})
	}
}

func TestBuiltin_Small(t *testing.T) {
	def, err := worlds.Builtin("small")
	require.NoError(t, err)

	w := def.World()
	assert.Equal(t, "(0,,e|l,g,m|k||f)", w.ID())
	assert.Equal(t, domain.FormBall, w.Objects["e"].Form)
	assert.Equal(t, "blue", w.Objects["m"].Color)
}

func TestBuiltin_Unknown(t *testing.T) {
	_, err := worlds.Builtin("atlantis")
	assert.Error(t, err)
}

func TestParse_RejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			"unknown form",
			`
objects:
  a: { form: sphere, size: small, color: red }
stacks:
  - [a]
`,
		},
		{
			"missing stacks",
			`
objects:
  a: { form: ball, size: small, color: red }
`,
		},
		{
			"unexpected key",
			`
objects:
  a: { form: ball, size: small, color: red }
stacks:
  - [a]
gravity: 9.81
`,
		},
		{
			"stack references unknown object",
			`
objects:
  a: { form: ball, size: small, color: red }
stacks:
  - [a, b]
`,
		},
		{
			"arm out of range",
			`
objects:
  a: { form: ball, size: small, color: red }
stacks:
  - [a]
arm: 5
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := worlds.Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_NamesDefaultToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	doc := `
objects:
  a: { form: ball, size: small, color: red }
stacks:
  - [a]
  - []
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	def, err := worlds.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", def.Name)
	assert.Len(t, def.Stacks, 2)
}
