package process_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/shrdlite/pkg/adapters/process"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test grammar uses a shell script")
	}
}

func TestParser_RunsGrammarProcess(t *testing.T) {
	skipOnWindows(t)

	// A grammar that ignores its input and always yields one parse.
	dir := t.TempDir()
	script := filepath.Join(dir, "grammar.sh")
	require.NoError(t, os.WriteFile(script, []byte(`#!/bin/sh
cat > /dev/null
echo '[{"input": "take the ball", "parse": {"command": "take", "entity": {"quantifier": "the", "object": {"form": "ball"}}}}]'
`), 0o755))

	p := process.NewParser("/bin/sh", []string{script})
	parses, err := p.Parse(context.Background(), "take the ball")
	require.NoError(t, err)
	require.Len(t, parses, 1)
	assert.Equal(t, domain.VerbTake, parses[0].Command.Verb)
}

func TestParser_EmptyOutputIsNoParse(t *testing.T) {
	skipOnWindows(t)

	p := process.NewParser("/bin/sh", []string{"-c", "cat > /dev/null"})
	_, err := p.Parse(context.Background(), "gibberish")
	assert.ErrorIs(t, err, domain.ErrNoParse)
}

func TestParser_FailureIncludesStderr(t *testing.T) {
	skipOnWindows(t)

	p := process.NewParser("/bin/sh", []string{"-c", "echo broken >&2; exit 3"})
	_, err := p.Parse(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadGrammar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: english
command: node
args: ["grammar.js"]
env:
  GRAMMAR_MODE: strict
`), 0o644))

	cfg, err := process.LoadGrammar(path)
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Command)
	assert.Equal(t, []string{"grammar.js"}, cfg.Args)
	assert.Equal(t, "strict", cfg.Environment["GRAMMAR_MODE"])

	p := process.ParserFromConfig(cfg)
	assert.NotNil(t, p)
}

func TestLoadGrammar_MissingCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: broken\n"), 0o644))

	_, err := process.LoadGrammar(path)
	assert.Error(t, err)
}
