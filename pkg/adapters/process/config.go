package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GrammarConfig describes how to launch an external grammar.
type GrammarConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// LoadGrammar reads a grammar configuration file (YAML or JSON).
func LoadGrammar(path string) (*GrammarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar config: %w", err)
	}

	var cfg GrammarConfig
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse grammar config: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse grammar config: %w", err)
		}
	}

	if cfg.Command == "" {
		return nil, fmt.Errorf("grammar config %s has no command", path)
	}
	return &cfg, nil
}

// ParserFromConfig builds the subprocess parser a config describes.
func ParserFromConfig(cfg *GrammarConfig, opts ...Option) *Parser {
	if cfg.Environment != nil {
		opts = append(opts, WithEnv(cfg.Environment))
	}
	return NewParser(cfg.Command, cfg.Args, opts...)
}
