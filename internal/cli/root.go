package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fortuna-events/crosslink/pkg/app"
	"github.com/fortuna-events/crosslink/pkg/buildinfo"
	"github.com/fortuna-events/crosslink/pkg/config"
	"github.com/fortuna-events/crosslink/pkg/errors"
	"github.com/fortuna-events/crosslink/pkg/pipeline"
)

// rootOpts holds the command-line flags for the root command.
type rootOpts struct {
	dataPath   string
	configPath string
	withDebug  bool
	fast       bool
	preview    bool
	dry        bool
}

// Execute runs the crosslink CLI and returns an error if the run fails.
//
// Flag values override config-file values, which override built-in defaults.
// Any format, duplicate-id, dangling-reference, or cycle error exits non-zero
// with a message naming the offending marker or id.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := rootOpts{}

	root := &cobra.Command{
		Use:           "crosslink",
		Short:         "crosslink resolves cross-references in the shared Fortuna data file",
		Long:          "crosslink links records of the Fortuna companion apps between them.\n\nSection markers:\n" + markerHelp(),
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVarP(&opts.dataPath, "data", "d", "", fmt.Sprintf("data file path (default %q)", pipeline.DefaultDataPath))
	root.Flags().StringVar(&opts.configPath, "config", "", fmt.Sprintf("config file path (default %q if present)", config.DefaultPath))
	root.Flags().BoolVar(&opts.withDebug, "with-debug", false, "create a debug Cross-Roads entity linking to every record")
	root.Flags().BoolVarP(&opts.fast, "fast", "f", false, "resolve in dependency order (each entity resolved once)")
	root.Flags().BoolVarP(&opts.preview, "preview", "p", false, "render the link graph to preview.png")
	root.Flags().BoolVar(&opts.dry, "dry", false, "validate the data file without computing links")

	err := root.ExecuteContext(ctx)
	if err != nil && ctx.Err() == nil {
		printError("%s", errors.UserMessage(err))
	}
	return err
}

// run merges flags with the optional config file and executes the pipeline.
func run(ctx context.Context, cmd *cobra.Command, opts *rootOpts) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := mergedOptions(cmd, opts)
	if err != nil {
		return err
	}
	pipeOpts.Logger = logger

	prog := newProgress(logger)
	result, err := pipeline.Run(ctx, pipeOpts)
	if err != nil {
		return err
	}

	printBoard(result.Graph)
	if pipeOpts.Dry {
		printWarning("dry run: %d entities validated, no links computed", result.Stats.EntityCount)
		return nil
	}
	prog.done(fmt.Sprintf("Linked %d entities (%d references)",
		result.Stats.EntityCount, result.Stats.RefCount))
	printSuccess("%d entities resolved", result.Stats.EntityCount)
	return nil
}

// mergedOptions builds pipeline options with flag > config > default
// precedence. Boolean config keys only turn features on; a flag given on the
// command line always wins.
func mergedOptions(cmd *cobra.Command, opts *rootOpts) (pipeline.Options, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return pipeline.Options{}, err
	}

	po := pipeline.Options{
		DataPath:    opts.dataPath,
		PreviewPath: cfg.Preview,
		WithDebug:   opts.withDebug,
		Fast:        opts.fast,
		Preview:     opts.preview,
		Dry:         opts.dry,
	}
	if po.DataPath == "" {
		po.DataPath = cfg.Data
	}
	if !cmd.Flags().Changed("with-debug") && cfg.WithDebug {
		po.WithDebug = true
	}
	if !cmd.Flags().Changed("fast") && cfg.Fast {
		po.Fast = true
	}
	return po, nil
}

// markerHelp lists each marker literal with its application base URL,
// matching the data file's external contract.
func markerHelp() string {
	var b strings.Builder
	for _, a := range app.All() {
		fmt.Fprintf(&b, "  %s %s\n", a.Marker(), a.BaseURL())
	}
	return b.String()
}
