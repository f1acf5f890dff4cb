// Package process runs an external grammar as a subprocess parser.
//
// The natural-language grammar of the original system lives outside the
// core (typically in another language entirely). This adapter shells out
// to it: the utterance goes to the child's stdin, parse trees come back
// as JSON on stdout, in the format pkg/adapters/parsejson accepts.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aretw0/shrdlite/pkg/adapters/parsejson"
	"github.com/aretw0/shrdlite/pkg/domain"
)

// Parser implements ports.Parser by executing a configured command.
type Parser struct {
	command string
	args    []string
	env     map[string]string
	baseDir string
	decoder *parsejson.Parser
}

// Option configures the parser.
type Option func(*Parser)

// WithBaseDir sets the working directory for the grammar process.
func WithBaseDir(dir string) Option {
	return func(p *Parser) { p.baseDir = dir }
}

// WithEnv adds environment variables for the grammar process.
func WithEnv(env map[string]string) Option {
	return func(p *Parser) { p.env = env }
}

// NewParser creates a subprocess parser for the given command line.
func NewParser(command string, args []string, opts ...Option) *Parser {
	p := &Parser{
		command: command,
		args:    args,
		decoder: parsejson.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the grammar on one utterance.
func (p *Parser) Parse(ctx context.Context, utterance string) ([]domain.ParseResult, error) {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Dir = p.baseDir

	// Arguments go through stdin and the environment, never the command
	// line, so an utterance cannot inject flags.
	cmd.Stdin = strings.NewReader(utterance)
	env := cmd.Environ()
	for k, v := range p.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("grammar process failed: %w. Stderr: %s", err, stderr.String())
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return nil, domain.ErrNoParse
	}
	return p.decoder.Parse(ctx, output)
}
