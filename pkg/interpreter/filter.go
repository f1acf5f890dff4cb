package interpreter

import (
	"github.com/aretw0/shrdlite/pkg/domain"
)

// matches compares an object against the attribute part of a description,
// field by field. Absent fields match anything; FormAny matches any form.
func matches(obj domain.Object, desc domain.Object) bool {
	if desc.Form != "" && desc.Form != domain.FormAny && desc.Form != obj.Form {
		return false
	}
	if desc.Size != "" && desc.Size != obj.Size {
		return false
	}
	if desc.Color != "" && desc.Color != obj.Color {
		return false
	}
	return true
}

// filter returns every stack identifier matching the description, in
// stack order. A floor description resolves to the floor sentinel, and a
// nested description recurses through its inner object before the
// location clause intersects the result. The result may be empty; callers
// decide whether that is an error, since the held object may still be
// added on top.
func filter(d domain.ObjectDesc, w *domain.WorldState) ([]string, error) {
	if d.Form == domain.FormFloor {
		return []string{domain.FloorID}, nil
	}

	candidates := w.AllIDs()
	if d.Object != nil {
		inner, err := filter(*d.Object, w)
		if err != nil {
			return nil, err
		}
		candidates = inner
	}
	if d.Location != nil {
		related, err := filterRelations(*d.Location, w)
		if err != nil {
			return nil, err
		}
		candidates = intersect(candidates, related)
	}

	var out []string
	attrs := d.Attributes()
	for _, id := range candidates {
		obj, _ := w.Object(id)
		if matches(obj, attrs) {
			out = append(out, id)
		}
	}
	return out, nil
}

// filterRelations returns every identifier standing in the location's
// relation to some resolver of its inner entity.
func filterRelations(loc domain.Location, w *domain.WorldState) ([]string, error) {
	delimiters, err := resolveSet(loc.Entity.Object, w)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]bool)
	add := func(ids ...string) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	for _, delim := range delimiters {
		if delim == domain.FloorID {
			switch loc.Relation {
			case domain.RelAbove, domain.RelOntop:
				// Everything resting directly on the floor.
				for _, stack := range w.Stacks {
					if len(stack) > 0 {
						add(stack[0])
					}
				}
			}
			continue
		}

		col, row, ok := w.Position(delim)
		if !ok {
			// Held delimiters stand in no observable spatial relation.
			continue
		}
		stack := w.Stacks[col]

		switch loc.Relation {
		case domain.RelLeftOf:
			for c := 0; c < col; c++ {
				add(w.Stacks[c]...)
			}
		case domain.RelRightOf:
			for c := col + 1; c < len(w.Stacks); c++ {
				add(w.Stacks[c]...)
			}
		case domain.RelAbove:
			add(stack[row+1:]...)
		case domain.RelUnder:
			add(stack[:row]...)
		case domain.RelInside:
			obj, _ := w.Object(delim)
			if obj.Form == domain.FormBox && row+1 < len(stack) {
				add(stack[row+1])
			}
		case domain.RelOntop:
			obj, _ := w.Object(delim)
			if obj.Form != domain.FormBox && row+1 < len(stack) {
				add(stack[row+1])
			}
		case domain.RelBeside:
			if col > 0 {
				add(w.Stacks[col-1]...)
			}
			if col+1 < len(w.Stacks) {
				add(w.Stacks[col+1]...)
			}
		}
	}
	return out, nil
}

// resolveSet resolves a description to its full candidate set: the stack
// matches plus, for a flat description, the held object when its
// attributes match. Zero candidates is a no-matching-object error.
func resolveSet(d domain.ObjectDesc, w *domain.WorldState) ([]string, error) {
	ids, err := filter(d, w)
	if err != nil {
		return nil, err
	}
	if w.Holding != "" && d.Location == nil && d.Object == nil && d.Form != domain.FormFloor {
		held, _ := w.Object(w.Holding)
		if matches(held, d.Attributes()) {
			ids = append(ids, w.Holding)
		}
	}
	if len(ids) == 0 {
		return nil, describeErr(d)
	}
	return ids, nil
}

func intersect(ordered, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		set[id] = true
	}
	var out []string
	for _, id := range ordered {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}
