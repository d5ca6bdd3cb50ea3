// Package pipeline orchestrates one full run of the linker:
// read → split → parse → bind → schedule → resolve → optional preview.
//
// The run is single-threaded, synchronous, and batch: the entity graph is
// built once, resolved once, and discarded when the process exits. The CLI is
// a thin wrapper around this package so the same behavior is testable without
// a terminal.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/schedule"
)

const (
	// DefaultDataPath is used when no data file is given.
	DefaultDataPath = "data.txt"

	// DefaultPreviewPath is where the preview renderer writes its image.
	DefaultPreviewPath = "preview.png"
)

// Options configures one pipeline run.
type Options struct {
	// DataPath is the input file path (DefaultDataPath if empty).
	DataPath string

	// WithDebug appends the synthetic Cross-Roads debug entity.
	WithDebug bool

	// Fast selects ordered (topological) scheduling instead of naive.
	Fast bool

	// Preview renders the resolved graph to PreviewPath.
	Preview bool

	// PreviewPath is the preview output path (DefaultPreviewPath if empty).
	PreviewPath string

	// Dry validates the file and builds the graph without resolving.
	Dry bool

	// Logger receives progress output. Defaults to a discard logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults applies defaults for unset options.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() {
	if o.DataPath == "" {
		o.DataPath = DefaultDataPath
	}
	if o.PreviewPath == "" {
		o.PreviewPath = DefaultPreviewPath
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Mode returns the scheduling mode selected by the options.
func (o *Options) Mode() schedule.Mode {
	if o.Fast {
		return schedule.ModeOrdered
	}
	return schedule.ModeNaive
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the entity graph; entities carry their resolved links unless
	// the run was dry.
	Graph *entity.Graph

	// Plan is the resolution order used (empty for dry runs).
	Plan schedule.Plan

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount int
	RefCount    int
	ParseTime   time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}
