// Package cli implements the voicevoxctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"voicevoxcore/internal/common/fsutil"
	"voicevoxcore/internal/config"
	"voicevoxcore/internal/httpapi"
	"voicevoxcore/internal/logging"
	"voicevoxcore/pkg/voicevox"
)

// engine is the part of *voicevox.Core the commands use.
type engine interface {
	httpapi.Service
	Initialize(rootDir string, useGPU bool) error
	Close() error
}

// Seams for tests.
var (
	fnOpen = func(path string, opts ...voicevox.Option) (engine, error) {
		c, err := voicevox.New(path, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	fnCheck = voicevox.Check
)

// flags holds values given on the command line. Only flags the user set
// override the config file.
type flags struct {
	configPath string
	library    string
	rootDir    string
	useGPU     bool
	addr       string
	logLevel   string
	logFile    string
	logFormat  string
}

// Run executes voicevoxctl with args.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := buildRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func buildRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "voicevoxctl",
		Short:         "Inspect and serve a VOICEVOX core library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Config file (.yaml, .json or .toml)")
	pf.StringVar(&f.library, "lib", "", "Core library file or the directory containing it (defaults "+config.EnvLibrary+")")
	pf.StringVar(&f.rootDir, "root-dir", "", "Model root directory passed to initialize (defaults to the library's directory)")
	pf.BoolVar(&f.useGPU, "gpu", false, "Initialize the engine with GPU inference")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this rotated file")
	pf.StringVar(&f.logFormat, "log-format", "", "Terminal log format: console|json")

	root.AddCommand(newCheckCmd(f), newMetasCmd(f), newServeCmd(f))
	return root
}

// resolveConfig merges the config file, set flags and defaults.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("lib", &cfg.Library, f.library)
	set("root-dir", &cfg.RootDir, f.rootDir)
	set("addr", &cfg.Addr, f.addr)
	set("log-level", &cfg.LogLevel, f.logLevel)
	set("log-file", &cfg.LogFile, f.logFile)
	set("log-format", &cfg.LogFormat, f.logFormat)
	if cmd.Flags().Changed("gpu") {
		cfg.UseGPU = f.useGPU
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	lib, err := fsutil.ResolveLibrary(cfg.Library)
	if err != nil {
		return cfg, err
	}
	cfg.Library = lib
	if cfg.RootDir == "" {
		cfg.RootDir = filepath.Dir(cfg.Library)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Stderr: cmd.ErrOrStderr(),
	})
}

// openInitialized opens the library and initializes the engine. Native
// failures carry the engine's own explanation.
func openInitialized(cfg config.Config, log zerolog.Logger, opts ...voicevox.Option) (engine, error) {
	opts = append([]voicevox.Option{voicevox.WithLogger(log)}, opts...)
	e, err := fnOpen(cfg.Library, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(cfg.RootDir, cfg.UseGPU); err != nil {
		if msg, _ := e.LastErrorMessage(); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

// ExitCode maps an error from Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case voicevox.IsLoadError(err):
		return 3
	case voicevox.IsCallFailed(err):
		return 4
	default:
		return 1
	}
}

// Main runs voicevoxctl against the process arguments and returns the exit
// status.
func Main(ctx context.Context) int {
	err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "voicevoxctl:", err)
	}
	return ExitCode(err)
}
