// Package resolve materializes entity references into absolute links.
//
// The resolver walks entities in the scheduler-assigned order. An entity's
// link is its application base URL joined with its id; each reference's
// already-resolved link is appended as a ref query parameter, in reference
// order. Resolving the same entity twice with the same graph state yields a
// byte-identical link, which is what makes the naive scheduler's
// re-resolution path safe.
package resolve

import (
	"strings"

	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
	"github.com/fortuna-events/crosslink/pkg/schedule"
)

// Resolver walks a plan over the entity graph, transitioning each entity
// unresolved → resolving → resolved and filling in its link.
type Resolver struct {
	g *entity.Graph
}

// New creates a resolver over g.
func New(g *entity.Graph) *Resolver {
	return &Resolver{g: g}
}

// Run resolves every step of the plan in order.
// On failure the offending entity is left in the error state.
func (r *Resolver) Run(plan schedule.Plan) error {
	for _, id := range plan.Steps {
		if err := r.Resolve(id); err != nil {
			return err
		}
	}
	return nil
}

// Resolve computes the link for one entity.
//
// Every reference must already be resolved; hitting an unresolved one is an
// UNRESOLVED_REFERENCE error, an ordering-contract violation that indicates a
// scheduler bug rather than bad input. In naive mode an already-resolved
// entity may be resolved again; the recomputed link is identical.
func (r *Resolver) Resolve(id string) error {
	e, ok := r.g.Entity(id)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "plan step %q not in graph", id)
	}

	e.Status = entity.StatusResolving
	links := make([]string, 0, len(e.Refs))
	for _, ref := range e.Refs {
		target, ok := r.g.Entity(ref)
		if !ok {
			e.Status = entity.StatusError
			return errors.New(errors.ErrCodeReferenceNotFound,
				"entity %q references unknown id %q", e.ID, ref)
		}
		if target.Status != entity.StatusResolved || target.Link == "" {
			e.Status = entity.StatusError
			return errors.New(errors.ErrCodeUnresolvedReference,
				"entity %q needs %q resolved first (status %s); the scheduler violated its ordering contract",
				e.ID, ref, target.Status)
		}
		links = append(links, target.Link)
	}

	e.Link = Link(e.App.BaseURL(), e.ID, links)
	e.Status = entity.StatusResolved
	return nil
}

// Link builds an absolute link from a base URL, an entity id, and the
// resolved links of its references. Ids are restricted to URL-unreserved
// characters at parse time, so the id embeds without escaping. Reference
// links are embedded verbatim as repeated ref parameters.
func Link(baseURL, id string, refLinks []string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteByte('/')
	b.WriteString(id)
	for i, l := range refLinks {
		if i == 0 {
			b.WriteString("?ref=")
		} else {
			b.WriteString("&ref=")
		}
		b.WriteString(l)
	}
	return b.String()
}
