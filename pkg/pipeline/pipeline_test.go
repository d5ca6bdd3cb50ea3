package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fortuna-events/crosslink/pkg/app"
	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// twoSections is the canonical end-to-end input: one Quest entity Q1
// referencing one Dice entity D1, D1 with no references.
const twoSections = `$$$$$
id: Q1
title: Lighthouse quest
unlocks: roll [D1] when complete

%%%%%
id: D1
sides: 6
`

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return path
}

func TestRunOrderedEndToEnd(t *testing.T) {
	res, err := Run(context.Background(), Options{
		DataPath: writeData(t, twoSections),
		Fast:     true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// D1 must be planned before Q1.
	var iQ1, iD1 int
	for i, id := range res.Plan.Steps {
		switch id {
		case "Q1":
			iQ1 = i
		case "D1":
			iD1 = i
		}
	}
	if iD1 > iQ1 {
		t.Errorf("plan %v resolves Q1 before D1", res.Plan.Steps)
	}

	d1, _ := res.Graph.Entity("D1")
	if d1.Link != "https://dice.fortuna-events.fr/D1" {
		t.Errorf("D1 link = %q", d1.Link)
	}
	q1, _ := res.Graph.Entity("Q1")
	if !strings.Contains(q1.Link, "Q1") || !strings.Contains(q1.Link, d1.Link) {
		t.Errorf("Q1 link = %q, want it to contain Q1 and %q", q1.Link, d1.Link)
	}
}

func TestRunModesAgree(t *testing.T) {
	ordered, err := Run(context.Background(), Options{DataPath: writeData(t, twoSections), Fast: true})
	if err != nil {
		t.Fatalf("Run(ordered) error: %v", err)
	}
	naive, err := Run(context.Background(), Options{DataPath: writeData(t, twoSections)})
	if err != nil {
		t.Fatalf("Run(naive) error: %v", err)
	}

	for _, id := range ordered.Graph.IDs() {
		oe, _ := ordered.Graph.Entity(id)
		ne, _ := naive.Graph.Entity(id)
		if oe.Link != ne.Link {
			t.Errorf("entity %s: ordered %q != naive %q", id, oe.Link, ne.Link)
		}
	}
}

func TestRunWithDebug(t *testing.T) {
	res, err := Run(context.Background(), Options{
		DataPath:  writeData(t, twoSections),
		WithDebug: true,
		Fast:      true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.Graph.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (Q1, D1, debug)", res.Graph.Len())
	}
	dbg, ok := res.Graph.Entity(entity.DebugID)
	if !ok {
		t.Fatal("debug entity missing")
	}
	if dbg.App != app.CrossRoads {
		t.Errorf("debug App = %v, want Cross-Roads", dbg.App)
	}
	q1, _ := res.Graph.Entity("Q1")
	d1, _ := res.Graph.Entity("D1")
	if !strings.Contains(dbg.Link, q1.Link) || !strings.Contains(dbg.Link, d1.Link) {
		t.Errorf("debug link %q does not embed both entity links", dbg.Link)
	}
}

func TestRunDry(t *testing.T) {
	res, err := Run(context.Background(), Options{
		DataPath: writeData(t, twoSections),
		Dry:      true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(res.Plan.Steps) != 0 {
		t.Errorf("dry run produced a plan: %v", res.Plan.Steps)
	}
	for _, e := range res.Graph.Entities() {
		if e.Status != entity.StatusUnresolved {
			t.Errorf("entity %s status = %v, want unresolved", e.ID, e.Status)
		}
		if e.Link != "" {
			t.Errorf("entity %s has link %q, want none", e.ID, e.Link)
		}
	}
}

func TestRunDryStillValidates(t *testing.T) {
	// Duplicate ids must surface even when resolution is skipped.
	dup := "$$$$$\nid: X\n\n%%%%%\nid: X\n"
	_, err := Run(context.Background(), Options{DataPath: writeData(t, dup), Dry: true})
	if !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("Run() = %v, want DUPLICATE_ID", err)
	}

	malformed := "junk before marker\n$$$$$\nid: Q1\n"
	_, err = Run(context.Background(), Options{DataPath: writeData(t, malformed), Dry: true})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Run() = %v, want INVALID_FORMAT", err)
	}
}

func TestRunDanglingReference(t *testing.T) {
	raw := "$$$$$\nid: Q1\nunlocks: roll [GHOST]\n"
	_, err := Run(context.Background(), Options{DataPath: writeData(t, raw)})
	if !errors.Is(err, errors.ErrCodeReferenceNotFound) {
		t.Fatalf("Run() = %v, want REFERENCE_NOT_FOUND", err)
	}
	if !strings.Contains(errors.UserMessage(err), `"GHOST"`) {
		t.Errorf("error %q does not name the dangling id", errors.UserMessage(err))
	}
}

func TestRunCycleBothModes(t *testing.T) {
	raw := "$$$$$\nid: A\nnext: [B]\n\n%%%%%\nid: B\nnext: [A]\n"
	for _, fast := range []bool{true, false} {
		_, err := Run(context.Background(), Options{DataPath: writeData(t, raw), Fast: fast})
		if !errors.Is(err, errors.ErrCodeCycle) {
			t.Errorf("Run(fast=%v) = %v, want CYCLE", fast, err)
		}
	}
}

func TestRunMissingDataFile(t *testing.T) {
	_, err := Run(context.Background(), Options{DataPath: filepath.Join(t.TempDir(), "absent.txt")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Run() = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	opts.ValidateAndSetDefaults()

	if opts.DataPath != DefaultDataPath {
		t.Errorf("DataPath = %q, want %q", opts.DataPath, DefaultDataPath)
	}
	if opts.PreviewPath != DefaultPreviewPath {
		t.Errorf("PreviewPath = %q, want %q", opts.PreviewPath, DefaultPreviewPath)
	}
	if opts.Logger == nil {
		t.Error("Logger is nil after defaults")
	}
}

func TestSampleDataResolves(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "data.sample.txt"))
	if err != nil {
		t.Skipf("sample data not available: %v", err)
	}
	res, err := Run(context.Background(), Options{DataPath: writeData(t, string(raw)), Fast: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for _, e := range res.Graph.Entities() {
		if e.Status != entity.StatusResolved {
			t.Errorf("entity %s not resolved", e.ID)
		}
	}
}
