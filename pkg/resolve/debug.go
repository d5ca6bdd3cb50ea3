package resolve

import (
	"github.com/fortuna-events/crosslink/pkg/app"
	"github.com/fortuna-events/crosslink/pkg/entity"
)

// AddDebug appends the synthetic Cross-Roads debug entity to the graph.
//
// The debug entity references every entity parsed so far, in file order, so
// its resolved link enumerates every other resolved link for manual QA. It is
// never present in the source text but participates in scheduling and
// resolution like any other entity; since it depends on everyone, ordered
// mode naturally schedules it last. A record in the data file that already
// uses the DEBUG id collides and surfaces as a duplicate id error.
func AddDebug(g *entity.Graph) error {
	dbg := &entity.Entity{
		ID:     entity.DebugID,
		App:    app.CrossRoads,
		Refs:   g.IDs(),
		Status: entity.StatusUnresolved,
	}
	return g.Insert(dbg)
}
