package entity

import (
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// Graph owns every entity for one run of the tool.
//
// It is built once per invocation and discarded at process exit. Only the
// parser inserts into it, and only the resolver mutates entity status and
// links, so no locking discipline is required.
type Graph struct {
	byID  map[string]*Entity
	order []string // ids in file order (section order, then record order)
}

// NewGraph creates an empty entity graph.
func NewGraph() *Graph {
	return &Graph{byID: make(map[string]*Entity)}
}

// Insert adds an entity to the graph, preserving insertion order.
// Returns a DUPLICATE_ID error if an entity with the same id already exists;
// ids must be unique across the whole file since references cross sections.
func (g *Graph) Insert(e *Entity) error {
	if e.ID == "" {
		return errors.New(errors.ErrCodeInternal, "entity with empty id")
	}
	if prev, exists := g.byID[e.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateID,
			"duplicate id %q: already declared in %s section", e.ID, prev.App)
	}
	g.byID[e.ID] = e
	g.order = append(g.order, e.ID)
	return nil
}

// Entity returns the entity with the given id and whether it exists.
func (g *Graph) Entity(id string) (*Entity, bool) {
	e, ok := g.byID[id]
	return e, ok
}

// Entities returns all entities in file order.
func (g *Graph) Entities() []*Entity {
	out := make([]*Entity, len(g.order))
	for i, id := range g.order {
		out[i] = g.byID[id]
	}
	return out
}

// IDs returns all entity ids in file order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of entities in the graph.
func (g *Graph) Len() int { return len(g.byID) }

// RefCount returns the total number of references across all entities.
func (g *Graph) RefCount() int {
	n := 0
	for _, id := range g.order {
		n += len(g.byID[id].Refs)
	}
	return n
}

// Bind verifies that every reference targets an existing entity id.
// Returns a REFERENCE_NOT_FOUND error naming the dangling id and its referrer.
func (g *Graph) Bind() error {
	for _, id := range g.order {
		e := g.byID[id]
		for _, ref := range e.Refs {
			if _, ok := g.byID[ref]; !ok {
				return errors.New(errors.ErrCodeReferenceNotFound,
					"entity %q references unknown id %q", e.ID, ref)
			}
		}
	}
	return nil
}

// Referrers returns the ids of entities that reference the given id, in file
// order. This is the reverse of the Refs relation.
func (g *Graph) Referrers(id string) []string {
	var out []string
	for _, from := range g.order {
		for _, ref := range g.byID[from].Refs {
			if ref == id {
				out = append(out, from)
				break
			}
		}
	}
	return out
}
