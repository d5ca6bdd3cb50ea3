package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
	"github.com/fortuna-events/crosslink/pkg/parse"
	"github.com/fortuna-events/crosslink/pkg/render/nodelink"
	"github.com/fortuna-events/crosslink/pkg/resolve"
	"github.com/fortuna-events/crosslink/pkg/schedule"
)

// Run executes the full pipeline with the given options.
//
// Errors are structured (see pkg/errors); any INVALID_FORMAT, DUPLICATE_ID,
// REFERENCE_NOT_FOUND, or CYCLE error aborts before output is produced. There
// is no partial-success mode: either the whole graph resolves or the run
// fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.ValidateAndSetDefaults()
	logger := opts.Logger

	raw, err := os.ReadFile(opts.DataPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s", opts.DataPath)
	}

	parseStart := time.Now()
	g, err := buildGraph(string(raw), opts.WithDebug)
	if err != nil {
		return nil, err
	}
	res := &Result{Graph: g}
	res.Stats.ParseTime = time.Since(parseStart)
	res.Stats.EntityCount = g.Len()
	res.Stats.RefCount = g.RefCount()
	logger.Infof("parsed %d entities with %d references", g.Len(), g.RefCount())

	if opts.Dry {
		logger.Info("dry run: skipping resolution")
	} else {
		resolveStart := time.Now()
		plan, err := schedule.Build(g, opts.Mode())
		if err != nil {
			return nil, err
		}
		logger.Debugf("%s plan: %d steps for %d entities", plan.Mode, len(plan.Steps), g.Len())

		if err := resolve.New(g).Run(plan); err != nil {
			return nil, err
		}
		res.Plan = plan
		res.Stats.ResolveTime = time.Since(resolveStart)
		logger.Infof("resolved %d entities (%s mode)", g.Len(), plan.Mode)
	}

	if opts.Preview {
		renderStart := time.Now()
		if err := nodelink.WritePNG(ctx, g, opts.PreviewPath); err != nil {
			return nil, err
		}
		res.Stats.RenderTime = time.Since(renderStart)
		logger.Infof("wrote preview to %s", opts.PreviewPath)
	}

	return res, nil
}

// buildGraph splits, parses, and binds the raw file text, optionally
// appending the debug entity. Binding runs even on dry runs so dangling
// references are caught while validating.
func buildGraph(raw string, withDebug bool) (*entity.Graph, error) {
	sections, err := parse.Split(raw)
	if err != nil {
		return nil, err
	}
	g, err := parse.Graph(sections)
	if err != nil {
		return nil, err
	}
	if withDebug {
		if err := resolve.AddDebug(g); err != nil {
			return nil, err
		}
	}
	if err := g.Bind(); err != nil {
		return nil, err
	}
	return g, nil
}
