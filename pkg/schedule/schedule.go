// Package schedule decides the order in which entities are resolved.
//
// An edge A→B (A references B) means A's resolution needs B resolved first,
// since A's link embeds B's link. Two strategies are provided:
//
//   - Ordered: a global topological order computed Kahn-style, with ties
//     broken by file order. Fast, each entity resolved exactly once.
//   - Naive: strict file order, resolving a referenced entity on demand
//     whenever it is needed before its own turn. Entities referenced early
//     get resolved again at their own turn, the documented cost of skipping
//     the ordered optimization. Re-resolution is idempotent by the resolver
//     contract.
//
// Both strategies are deterministic for a given input, and both convert an
// unresolvable dependency cycle into an explicit CYCLE error instead of
// looping or hanging.
package schedule

import (
	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// Mode selects a scheduling strategy.
type Mode int

const (
	// ModeNaive resolves in file order with on-demand re-resolution.
	ModeNaive Mode = iota
	// ModeOrdered resolves in dependency (topological) order.
	ModeOrdered
)

// String returns the mode name used in logs and flags.
func (m Mode) String() string {
	if m == ModeOrdered {
		return "ordered"
	}
	return "naive"
}

// Plan is a resolution order over the graph. Naive plans may list an entity
// more than once: once on demand and once at its own turn.
type Plan struct {
	Mode  Mode
	Steps []string
}

// Build computes the resolution plan for g in the given mode.
// The graph must already be bound (every reference targets an existing id).
func Build(g *entity.Graph, mode Mode) (Plan, error) {
	var steps []string
	var err error
	if mode == ModeOrdered {
		steps, err = ordered(g)
	} else {
		steps, err = naive(g)
	}
	if err != nil {
		return Plan{}, err
	}
	return Plan{Mode: mode, Steps: steps}, nil
}

// ordered computes a topological order by repeated extraction: at each step
// the first entity in file order with no unplanned reference is taken, which
// keeps the plan deterministic. If no entity can be extracted while some
// remain, those remaining form at least one cycle.
func ordered(g *entity.Graph) ([]string, error) {
	ids := g.IDs()
	planned := make(map[string]bool, len(ids))
	steps := make([]string, 0, len(ids))

	for len(steps) < len(ids) {
		picked := ""
		for _, id := range ids {
			if planned[id] {
				continue
			}
			e, _ := g.Entity(id)
			if depsPlanned(e, planned) {
				picked = id
				break
			}
		}
		if picked == "" {
			return nil, cycleError(g, planned)
		}
		planned[picked] = true
		steps = append(steps, picked)
	}
	return steps, nil
}

func depsPlanned(e *entity.Entity, planned map[string]bool) bool {
	for _, ref := range e.Refs {
		if !planned[ref] {
			return false
		}
	}
	return true
}

// cycleError walks the reference relation among unplanned entities until an
// id repeats, then reports that entity and its in-cycle successor. Every
// unplanned entity has at least one unplanned reference at this point, so the
// walk always closes.
func cycleError(g *entity.Graph, planned map[string]bool) error {
	start := ""
	for _, id := range g.IDs() {
		if !planned[id] {
			start = id
			break
		}
	}

	visited := make(map[string]bool)
	cur := start
	for !visited[cur] {
		visited[cur] = true
		e, _ := g.Entity(cur)
		for _, ref := range e.Refs {
			if !planned[ref] {
				cur = ref
				break
			}
		}
	}

	e, _ := g.Entity(cur)
	next := ""
	for _, ref := range e.Refs {
		if !planned[ref] {
			next = ref
			break
		}
	}
	return errors.New(errors.ErrCodeCycle,
		"dependency cycle involving %q (references %q)", cur, next)
}

// frame is one entry of the naive scheduler's explicit resolution stack.
type frame struct {
	id  string
	ref int // index of the next reference to satisfy
}

// naive plans strict file order with on-demand resolution of forward
// references. The per-chain in-progress set detects cycles: demanding an
// entity that is already on the stack means the chain loops back on itself.
// An explicit stack is used instead of recursion so call depth stays bounded
// on large graphs.
func naive(g *entity.Graph) ([]string, error) {
	planned := make(map[string]bool, g.Len())
	var steps []string

	for _, turn := range g.IDs() {
		inChain := make(map[string]bool)
		stack := []frame{{id: turn}}
		inChain[turn] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			e, _ := g.Entity(top.id)

			if top.ref < len(e.Refs) {
				ref := e.Refs[top.ref]
				top.ref++
				if planned[ref] {
					continue
				}
				if inChain[ref] {
					return nil, errors.New(errors.ErrCodeCycle,
						"dependency cycle involving %q (references %q)", top.id, ref)
				}
				inChain[ref] = true
				stack = append(stack, frame{id: ref})
				continue
			}

			// All references satisfied: plan this entity. The entity at its
			// own turn is re-resolved even if an earlier chain demanded it.
			if top.id == turn || !planned[top.id] {
				steps = append(steps, top.id)
			}
			planned[top.id] = true
			delete(inChain, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return steps, nil
}
