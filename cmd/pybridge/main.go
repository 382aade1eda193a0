// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"pybridge/internal/debugger"
	"pybridge/internal/patterns"
)

var version = "0.1.0"

type rootOptions struct {
	Verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pybridge",
		Short: "Unify Python and CPython C code into Rust",
		Long: `pybridge recognizes when a Python operation and the C function that
implements it are two faces of the same thing, and collapses the pair
into a single Rust call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := 0
			if opts.Verbose {
				verbosity = 1
			}
			commonlog.Configure(verbosity, nil)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newDebugCommand(opts))
	cmd.AddCommand(newPatternsCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

type compileOptions struct {
	*rootOptions
	PythonFile string
	CFile      string
	Output     string
}

func newCompileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile --python <file.py> --c <file.c>",
		Short: "Run the full transpilation pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts)
		},
	}

	cmd.Flags().StringVar(&opts.PythonFile, "python", "", "Python source file")
	cmd.Flags().StringVar(&opts.CFile, "c", "", "C source file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write generated Rust here instead of stdout")
	_ = cmd.MarkFlagRequired("python")
	_ = cmd.MarkFlagRequired("c")

	return cmd
}

func runCompile(opts *compileOptions) error {
	log := commonlog.GetLogger("pybridge")
	start := time.Now()

	stepper := debugger.NewStepper(debugger.NewState(opts.PythonFile, opts.CFile))
	if err := stepper.Continue(); err != nil {
		color.Red("Transpilation failed after %s", formatDuration(time.Since(start)))
		return err
	}

	state := stepper.State()
	for _, tr := range state.History {
		log.Infof("%s: %s", tr.To.Name(), tr.Detail)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(state.RustCode), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.Output, err)
		}
	} else {
		fmt.Print(state.RustCode)
	}

	color.Green("Successfully transpiled %s + %s in %s",
		opts.PythonFile, opts.CFile, formatDuration(time.Since(start)))
	return nil
}

func newDebugCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Interactive transpilation debugging",
	}
	cmd.AddCommand(newDebugStepCommand(rootOpts))
	cmd.AddCommand(newDebugVisualizeCommand())
	return cmd
}

func newDebugStepCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "step --python <file.py> --c <file.c>",
		Short: "Step through the pipeline one phase at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			stepper := debugger.NewStepper(debugger.NewState(opts.PythonFile, opts.CFile))
			return debugger.RunREPL(stepper, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.PythonFile, "python", "", "Python source file")
	cmd.Flags().StringVar(&opts.CFile, "c", "", "C source file")
	_ = cmd.MarkFlagRequired("python")
	_ = cmd.MarkFlagRequired("c")

	return cmd
}

func newDebugVisualizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize <file>",
		Short: "Show a source file's syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				out string
				err error
			)
			switch strings.ToLower(filepath.Ext(path)) {
			case ".py":
				out, err = debugger.VisualizePython(path)
			case ".c", ".h":
				out, err = debugger.VisualizeC(path)
			default:
				return fmt.Errorf("cannot tell the language of %s, expected .py, .c or .h", path)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the supported operation pairs",
		Run: func(cmd *cobra.Command, args []string) {
			all := patterns.All()
			fmt.Fprintf(cmd.OutOrStdout(), "%d supported patterns:\n\n", len(all))
			for i, p := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "  %2d. %s\n", i+1, p)
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pybridge version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pybridge %s\n", version)
		},
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
