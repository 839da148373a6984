package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"voicevoxcore/internal/config"
	"voicevoxcore/internal/metrics"
	"voicevoxcore/pkg/types"
	"voicevoxcore/pkg/voicevox"
)

func newCheckCmd(f *flags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Verify the library loads and exports every required symbol",
		Example: "  voicevoxctl check --lib /opt/voicevox_core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			r := fnCheck(cfg.Library)
			if output == "text" {
				writeCheckText(cmd.OutOrStdout(), r)
			} else if err := writeOutput(cmd.OutOrStdout(), output, r); err != nil {
				return err
			}
			if !r.OK() {
				return voicevox.ErrLoad(r.Library, fmt.Errorf("check failed: %s", r.Error))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text|json|yaml|toml")
	return cmd
}

func writeCheckText(w io.Writer, r voicevox.CheckReport) {
	fmt.Fprintf(w, "library: %s\n", r.Library)
	if r.Size > 0 {
		fmt.Fprintf(w, "size:    %s\n", humanize.Bytes(uint64(r.Size)))
	}
	if !r.Loaded {
		fmt.Fprintf(w, "loaded:  no (%s)\n", r.Error)
		return
	}
	fmt.Fprintf(w, "loaded:  yes\n")
	fmt.Fprintf(w, "symbols: %d/%d\n", r.Symbols-len(r.Missing), r.Symbols)
	for _, m := range r.Missing {
		fmt.Fprintf(w, "missing: %s\n", m)
	}
}

func newMetasCmd(f *flags) *cobra.Command {
	var output string
	var noInit bool
	cmd := &cobra.Command{
		Use:     "metas",
		Short:   "Print the speakers and styles the engine reports",
		Example: "  voicevoxctl metas --lib /opt/voicevox_core -o yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			var e engine
			if noInit {
				e, err = fnOpen(cfg.Library, voicevox.WithLogger(logger.Logger))
			} else {
				e, err = openInitialized(cfg, logger.Logger)
			}
			if err != nil {
				return err
			}
			defer e.Close()

			speakers, err := e.Metas()
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, types.MetasResponse{Speakers: speakers})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json|yaml|toml")
	cmd.Flags().BoolVar(&noInit, "no-init", false, "Query metas without initializing the engine")
	return cmd
}

func newServeCmd(f *flags) *cobra.Command {
	var origins []string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Initialize the engine and serve read-only diagnostics over HTTP",
		Example: "  voicevoxctl serve --lib /opt/voicevox_core --addr :50021",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cors-origins") {
				cfg.CORSOrigins = origins
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Close()
			e, err := openInitialized(cfg, logger.Logger, voicevox.WithObserver(metrics.Recorder{}))
			if err != nil {
				return err
			}
			defer e.Close()
			return serve(cmd.Context(), cfg, e, logger.Logger)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "HTTP listen address (default "+config.DefaultAddr+")")
	cmd.Flags().StringSliceVar(&origins, "cors-origins", nil, "Allowed CORS origins, comma separated (CORS is off when empty)")
	return cmd
}

// writeOutput encodes v in the requested format.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
