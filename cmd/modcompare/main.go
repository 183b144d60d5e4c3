package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/ModCompare/internal/app"
	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/logging"
	"github.com/JonMunkholm/ModCompare/internal/web"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	dataDir  string
	file     string
	logLevel string
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "modcompare",
		Short:         "Compare hardware module parameters from a CSV, XLSX, or Postgres source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory searched for the data file (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&opts.file, "file", "", "Preferred data file name or path (overrides SOURCE_FILE)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newModelsCmd(opts),
		newParamsCmd(opts),
		newCompareCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// load reads the environment configuration, applies flag overrides, and
// sets up logging on the command's stderr.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.Source.DataDir = o.dataDir
	}
	if o.file != "" {
		cfg.Source.File = o.file
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// open loads configuration and wires the service.
func (o *options) open(cmd *cobra.Command) (*app.App, *config.Config, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func newModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List model identifiers in table order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			table, err := a.Service.Table(cmd.Context())
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), table.Identifiers())
		},
	}
}

func newParamsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List parameter names in table order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			table, err := a.Service.Table(cmd.Context())
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), table.Parameters())
		},
	}
}

func newCompareCmd(opts *options) *cobra.Command {
	var models []string
	var diff bool
	var format string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print a side-by-side comparison of models",
		Long: `Print the comparison matrix for the selected models: one row per parameter,
one column per model, in the order given.

Example: modcompare compare --model A --model B --diff --format md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := export.NormalizeFormat(format)
			if f == export.FormatPDF || f == export.FormatXLSX {
				return fmt.Errorf("%s is a binary format; use the export command", f)
			}

			a, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			g, err := compareGrid(cmd.Context(), a.Service, models, diff)
			if err != nil {
				return err
			}
			return a.Builder.Write(cmd.Context(), cmd.OutOrStdout(), g, f, web.CompareTitle)
		},
	}

	cmd.Flags().StringArrayVarP(&models, "model", "m", nil, "Model to compare (repeatable, taken verbatim)")
	cmd.Flags().BoolVar(&diff, "diff", false, "Only show parameters whose values differ")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), "Output format: txt|md|csv|yaml")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var mode string
	var models []string
	var params []string
	var diff bool
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a comparison or custom selection to a file",
		Long: `Write a comparison matrix (--mode compare) or a flat parameter selection
(--mode custom) to a file. Without -o the default download name is used.

Examples:
  modcompare export --model A --model B --format pdf
  modcompare export --mode custom --param Speed --param Power --model A -o picks.xlsx --format xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := export.NormalizeFormat(format)
			if err := f.Validate(); err != nil {
				return err
			}

			a, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var g export.Grid
			var title, name string
			switch strings.ToLower(mode) {
			case "compare":
				g, err = compareGrid(cmd.Context(), a.Service, models, diff)
				title, name = web.CompareTitle, web.CompareFilename(f)
			case "custom":
				g, err = customGrid(cmd.Context(), a.Service, params, models)
				title, name = web.CustomTitle, web.CustomFilename(f)
			default:
				return fmt.Errorf("unknown mode %q: use compare or custom", mode)
			}
			if err != nil {
				return err
			}
			if output == "" {
				output = name
			}

			// Serialize before creating the file so a failed render leaves nothing behind.
			data, err := a.Builder.Bytes(cmd.Context(), g, f, title)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			slog.Info("export written", "path", output, "format", string(f), "bytes", len(data))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "compare", "Export mode: compare|custom")
	cmd.Flags().StringArrayVarP(&models, "model", "m", nil, "Model to include (repeatable, taken verbatim)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter to include in custom mode (repeatable, taken verbatim)")
	cmd.Flags().BoolVar(&diff, "diff", false, "Only export differing parameters (compare mode)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "Output format: csv|pdf|xlsx|yaml|md|txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if port > 0 {
				cfg.Server.Port = port
			}
			server := web.NewServer(a.Service, a.Builder, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg.Server.Addr(), cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides SERVER_PORT)")
	return cmd
}

// compareGrid builds the export grid of a comparison.
func compareGrid(ctx context.Context, svc *core.Service, models []string, diff bool) (export.Grid, error) {
	m, ok, err := svc.Compare(ctx, models, diff)
	if err != nil {
		return export.Grid{}, err
	}
	if !ok {
		return export.Grid{}, core.ErrNoModelsSelected
	}
	return export.FromMatrix(m)
}

// customGrid builds the flat grid of a parameter selection.
func customGrid(ctx context.Context, svc *core.Service, params, models []string) (export.Grid, error) {
	if len(params) == 0 {
		return export.Grid{}, core.ErrNoParametersSelected
	}
	table, err := svc.Table(ctx)
	if err != nil {
		return export.Grid{}, err
	}
	if len(core.EffectiveSelection(table, models)) == 0 {
		return export.Grid{}, core.ErrNoModelsSelected
	}
	return export.FromTable(table, params, models)
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
