// Command corebindgen generates the Go function table for the native engine
// from its C header. It is run through go:generate in internal/ffi.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voicevoxcore/internal/bindgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "corebindgen:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var header, out, pkg string
	cmd := &cobra.Command{
		Use:           "corebindgen",
		Short:         "Generate a Go function table from a C header",
		Example:       "  corebindgen --header include/core.h --out core_generated.go --package ffi",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(header, out, pkg)
		},
	}
	cmd.Flags().StringVar(&header, "header", "", "C header to read")
	cmd.Flags().StringVar(&out, "out", "", "Go file to write (stdout when empty)")
	cmd.Flags().StringVar(&pkg, "package", "ffi", "Go package name of the output")
	_ = cmd.MarkFlagRequired("header")
	return cmd
}

func generate(header, out, pkg string) error {
	f, err := os.Open(header)
	if err != nil {
		return err
	}
	defer f.Close()
	h, err := bindgen.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", header, err)
	}
	src, err := bindgen.Emit(h, bindgen.EmitOptions{
		Package: pkg,
		Source:  filepath.ToSlash(header),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", header, err)
	}
	if out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	// leave the file untouched when nothing changed so mtimes stay stable
	if prev, err := os.ReadFile(out); err == nil && bytes.Equal(prev, src) {
		return nil
	}
	return os.WriteFile(out, src, 0o644)
}
