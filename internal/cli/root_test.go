package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fortuna-events/crosslink/pkg/app"
	"github.com/fortuna-events/crosslink/pkg/config"
)

func TestMarkerHelpListsAllApps(t *testing.T) {
	help := markerHelp()
	for _, a := range app.All() {
		if !strings.Contains(help, a.Marker()) {
			t.Errorf("marker help missing %q", a.Marker())
		}
		if !strings.Contains(help, a.BaseURL()) {
			t.Errorf("marker help missing %q", a.BaseURL())
		}
	}
}

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "crosslink"}
	cmd.Flags().Bool("with-debug", false, "")
	cmd.Flags().BoolP("fast", "f", false, "")
	return cmd
}

func TestMergedOptionsFlagOverConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(config.DefaultPath, []byte("data = \"from-config.txt\"\nfast = true\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := testCmd()
	if err := cmd.Flags().Set("fast", "false"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	po, err := mergedOptions(cmd, &rootOpts{dataPath: "from-flag.txt"})
	if err != nil {
		t.Fatalf("mergedOptions() error: %v", err)
	}
	if po.DataPath != "from-flag.txt" {
		t.Errorf("DataPath = %q, want flag value", po.DataPath)
	}
	if po.Fast {
		t.Error("Fast = true; explicit flag should override config")
	}
}

func TestMergedOptionsConfigOverDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(config.DefaultPath, []byte("data = \"from-config.txt\"\nwith_debug = true\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	po, err := mergedOptions(testCmd(), &rootOpts{})
	if err != nil {
		t.Fatalf("mergedOptions() error: %v", err)
	}
	if po.DataPath != "from-config.txt" {
		t.Errorf("DataPath = %q, want config value", po.DataPath)
	}
	if !po.WithDebug {
		t.Error("WithDebug = false, want config value true")
	}
}

func TestMergedOptionsNoConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	po, err := mergedOptions(testCmd(), &rootOpts{})
	if err != nil {
		t.Fatalf("mergedOptions() error: %v", err)
	}
	if po.DataPath != "" {
		t.Errorf("DataPath = %q, want empty (pipeline applies the default)", po.DataPath)
	}
}

func TestMergedOptionsExplicitConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/custom.toml"
	if err := os.WriteFile(path, []byte("preview = \"graph.png\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	po, err := mergedOptions(testCmd(), &rootOpts{configPath: path})
	if err != nil {
		t.Fatalf("mergedOptions() error: %v", err)
	}
	if po.PreviewPath != "graph.png" {
		t.Errorf("PreviewPath = %q, want %q", po.PreviewPath, "graph.png")
	}
}
