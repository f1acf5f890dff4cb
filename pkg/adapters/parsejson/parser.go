// Package parsejson implements ports.Parser for pre-parsed command trees.
//
// The natural-language grammar lives outside the core; hosts that run it
// (or test drivers) hand the resulting parse trees over as JSON, either a
// single object or an array of parses. This adapter decodes and
// normalizes them into the domain AST.
package parsejson

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Parser decodes JSON parse payloads.
type Parser struct{}

// New creates the adapter.
func New() *Parser { return &Parser{} }

// Parse decodes the payload into parse results. The payload is one parse
// object or an array of them; each is either a full ParseResult
// ({"input": ..., "parse": ...}) or a bare command tree.
func (p *Parser) Parse(ctx context.Context, utterance string) ([]domain.ParseResult, error) {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return nil, domain.ErrNoParse
	}

	var raw any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("invalid parse payload: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("invalid parse payload: expected an object or an array")
	}
	if len(items) == 0 {
		return nil, domain.ErrNoParse
	}

	results := make([]domain.ParseResult, 0, len(items))
	for i, item := range items {
		pr, err := decodeOne(item)
		if err != nil {
			return nil, fmt.Errorf("parse %d: %w", i, err)
		}
		results = append(results, pr)
	}
	return results, nil
}

func decodeOne(item any) (domain.ParseResult, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return domain.ParseResult{}, fmt.Errorf("parse entry must be an object")
	}

	// A bare command tree is accepted without the {input, parse} wrapper.
	if _, wrapped := m["parse"]; !wrapped {
		m = map[string]any{"parse": m}
	}

	var pr domain.ParseResult
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: normalizeHook,
		Result:     &pr,
		TagName:    "json",
	})
	if err != nil {
		return pr, err
	}
	if err := dec.Decode(m); err != nil {
		return pr, fmt.Errorf("malformed parse tree: %w", err)
	}
	if err := validateCommand(pr.Command); err != nil {
		return pr, err
	}
	return pr, nil
}

// normalizeHook folds the surface spellings of quantifiers and verbs into
// their canonical forms while decoding.
func normalizeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.ToLower(strings.TrimSpace(data.(string)))

	switch to {
	case reflect.TypeOf(domain.Quantifier("")):
		switch s {
		case "a", "an", "any":
			return domain.QuantAny, nil
		case "every", "each", "all":
			return domain.QuantAll, nil
		case "the":
			return domain.QuantThe, nil
		case "":
			return domain.QuantAny, nil
		}
		return nil, fmt.Errorf("unknown quantifier %q", s)

	case reflect.TypeOf(domain.Verb("")):
		switch s {
		case "take", "grasp", "pick up":
			return domain.VerbTake, nil
		case "move":
			return domain.VerbMove, nil
		case "put", "drop":
			return domain.VerbPut, nil
		}
		return nil, fmt.Errorf("unknown command %q", s)
	}
	return data, nil
}

func validateCommand(cmd domain.Command) error {
	switch cmd.Verb {
	case domain.VerbTake:
		if cmd.Entity == nil {
			return fmt.Errorf("take command without an entity")
		}
	case domain.VerbMove:
		if cmd.Entity == nil || cmd.Location == nil {
			return fmt.Errorf("move command needs an entity and a location")
		}
	case domain.VerbPut:
		if cmd.Location == nil {
			return fmt.Errorf("put command without a location")
		}
	default:
		return fmt.Errorf("unknown command %q", cmd.Verb)
	}

	var checkEntity func(e *domain.Entity) error
	var checkLocation func(l *domain.Location) error

	checkLocation = func(l *domain.Location) error {
		if l == nil {
			return nil
		}
		switch l.Relation {
		case domain.RelLeftOf, domain.RelRightOf, domain.RelAbove, domain.RelUnder,
			domain.RelOntop, domain.RelInside, domain.RelBeside:
		default:
			return fmt.Errorf("unknown relation %q", l.Relation)
		}
		if l.Entity == nil {
			return fmt.Errorf("location %q without an entity", l.Relation)
		}
		return checkEntity(l.Entity)
	}
	checkEntity = func(e *domain.Entity) error {
		if e == nil {
			return nil
		}
		d := &e.Object
		for d != nil {
			if err := checkLocation(d.Location); err != nil {
				return err
			}
			d = d.Object
		}
		return nil
	}

	if err := checkEntity(cmd.Entity); err != nil {
		return err
	}
	return checkLocation(cmd.Location)
}
