// Package worlds loads world definitions from YAML documents.
//
// Documents are validated against an embedded JSON Schema before they are
// decoded, so malformed files fail with a precise location instead of a
// half-built world. A few classic worlds ship embedded for the CLI and
// the examples.
package worlds

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed world.schema.json
var schemaSource string

//go:embed builtin/*.yaml
var builtinFS embed.FS

var schema = jsonschema.MustCompileString("world.schema.json", schemaSource)

// Definition is the on-disk shape of a world document.
type Definition struct {
	Name    string                   `yaml:"name" json:"name"`
	Objects map[string]domain.Object `yaml:"objects" json:"objects"`
	Stacks  [][]string               `yaml:"stacks" json:"stacks"`
	Arm     int                      `yaml:"arm" json:"arm"`
	Holding string                   `yaml:"holding,omitempty" json:"holding,omitempty"`
}

// World builds the runtime state from the definition.
func (d *Definition) World() *domain.WorldState {
	return &domain.WorldState{
		Objects: d.Objects,
		Stacks:  d.Stacks,
		Arm:     d.Arm,
		Holding: d.Holding,
	}
}

// Parse validates and decodes one YAML world document.
func Parse(data []byte) (*Definition, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	// Round-trip through JSON so the schema validator sees JSON types.
	jsonBytes, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("world document is not JSON-representable: %w", err)
	}
	var jsonValue any
	if err := json.Unmarshal(jsonBytes, &jsonValue); err != nil {
		return nil, err
	}
	if err := schema.Validate(jsonValue); err != nil {
		return nil, fmt.Errorf("world document rejected: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode world document: %w", err)
	}
	if err := def.World().Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent world: %w", err)
	}
	return &def, nil
}

// Load reads and parses a world document from a file path.
func Load(filePath string) (*Definition, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	return def, nil
}

// Builtin returns one of the embedded worlds by name.
func Builtin(name string) (*Definition, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown builtin world %q (have: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists the embedded worlds.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
