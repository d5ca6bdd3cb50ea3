// Package entity defines the typed records parsed from the shared data file
// and the in-memory graph that owns them for one run.
//
// An Entity is one record: a globally unique id, the application it belongs
// to, its raw fields as written in the file, and the ordered set of ids it
// references. The Graph is an insertion-ordered arena keyed by id; references
// are stored as ids and looked up through the arena rather than as direct
// pointers, since references may be mutual or cyclic before validation.
package entity

import "github.com/fortuna-events/crosslink/pkg/app"

// Status tracks an entity's progress through resolution.
type Status int

const (
	// StatusUnresolved is the initial state of every parsed entity.
	StatusUnresolved Status = iota
	// StatusResolving marks an entity whose link is being computed.
	StatusResolving
	// StatusResolved marks an entity with a stable resolved link.
	StatusResolved
	// StatusError marks an entity whose resolution failed.
	StatusError
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusResolving:
		return "resolving"
	case StatusResolved:
		return "resolved"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Field is one raw field of a record, as written in the file.
// Field order is preserved.
type Field struct {
	Name  string
	Value string
}

// Entity is one record parsed from a section of the data file.
//
// Refs holds the ids of the entities this one references, in order of first
// appearance in the field values, deduplicated. Link is empty until the
// resolver computes it.
type Entity struct {
	ID     string
	App    app.App
	Fields []Field
	Refs   []string
	Link   string
	Status Status
}

// Field returns the value of the named field and whether it exists.
func (e *Entity) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// DebugID is the id of the synthetic debug aggregate entity, which is
// created by the resolver in debug mode and never present in source text.
const DebugID = "DEBUG"
