package dsl

import (
	"fmt"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// Builder manages the world construction.
type Builder struct {
	objects map[string]domain.Object
	stacks  [][]string
	arm     int
	holding string
	err     error
}

// New creates a new world builder.
func New() *Builder {
	return &Builder{
		objects: make(map[string]domain.Object),
	}
}

// Object declares an object. Redeclaring an identifier is an error,
// reported by Build.
func (b *Builder) Object(id string, form domain.Form, size domain.Size, color string) *Builder {
	if _, exists := b.objects[id]; exists && b.err == nil {
		b.err = fmt.Errorf("object %q declared twice", id)
	}
	b.objects[id] = domain.Object{Form: form, Size: size, Color: color}
	return b
}

// Stack appends one column, bottom first. Call with no arguments for an
// empty column.
func (b *Builder) Stack(ids ...string) *Builder {
	b.stacks = append(b.stacks, append([]string(nil), ids...))
	return b
}

// Arm places the arm over the given column (default: 0).
func (b *Builder) Arm(col int) *Builder {
	b.arm = col
	return b
}

// Holding puts an object into the arm.
func (b *Builder) Holding(id string) *Builder {
	b.holding = id
	return b
}

// Build compiles and validates the world.
func (b *Builder) Build() (*domain.WorldState, error) {
	if b.err != nil {
		return nil, b.err
	}
	w := &domain.WorldState{
		Objects: b.objects,
		Stacks:  b.stacks,
		Arm:     b.arm,
		Holding: b.holding,
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}
	return w, nil
}
