// SPDX-License-Identifier: Apache-2.0
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pybridge/internal/hir"
)

const prompt = "(pybridge-debug) "

// RunREPL drives an interactive stepping session over the given stepper,
// reading commands from in and writing everything to out.
func RunREPL(stepper *Stepper, in io.Reader, out io.Writer) error {
	promptColor := color.New(color.FgBlue, color.Bold)
	errColor := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(out, color.CyanString("pybridge interactive debugger"))
	fmt.Fprintf(out, "Python: %s\n", stepper.State().PythonFile)
	fmt.Fprintf(out, "C:      %s\n", stepper.State().CFile)
	fmt.Fprintln(out, "Type 'help' for commands, 'step' to advance, 'quit' to leave.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\n%s", promptColor.Sprint(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", errColor.Sprint("error:"), err)
			continue
		}

		quit, err := handleCommand(cmd, stepper, out)
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", errColor.Sprint("error:"), err)
			continue
		}
		if quit {
			fmt.Fprintln(out, "Leaving debugger.")
			return nil
		}
	}
}

func handleCommand(cmd Command, stepper *Stepper, out io.Writer) (bool, error) {
	switch cmd.Kind {
	case CmdStep:
		phase, stepped, err := stepper.Step()
		if err != nil {
			return false, err
		}
		if !stepped {
			fmt.Fprintln(out, "Transpilation already complete.")
			return false, nil
		}
		printStep(stepper, phase, out)
	case CmdContinue:
		if err := stepper.Continue(); err != nil {
			return false, err
		}
		printStep(stepper, stepper.State().Phase, out)
	case CmdVisualize:
		fmt.Fprint(out, renderState(stepper.State()))
	case CmdInspect:
		inspect(cmd.Target, stepper.State(), out)
	case CmdBreak:
		stepper.AddBreakpoint(*cmd.Breakpoint)
		fmt.Fprintf(out, "%s %s\n", color.GreenString("Breakpoint added:"), cmd.Breakpoint)
	case CmdList:
		listBreakpoints(stepper, out)
	case CmdClear:
		if stepper.ClearBreakpoint(cmd.Index) {
			fmt.Fprintf(out, "Cleared breakpoint %d.\n", cmd.Index)
		} else {
			fmt.Fprintf(out, "No breakpoint %d.\n", cmd.Index)
		}
	case CmdHelp:
		printHelp(out)
	case CmdQuit:
		return true, nil
	}
	return false, nil
}

func printStep(stepper *Stepper, phase Phase, out io.Writer) {
	state := stepper.State()
	fmt.Fprintf(out, "%s\n", color.New(color.FgCyan, color.Bold).Sprintf("=== Step %d ===", state.StepCount))
	fmt.Fprintf(out, "%s %s\n", color.GreenString("Phase:"), phase.Name())
	if len(state.History) > 0 {
		fmt.Fprintf(out, "  %s\n", state.History[len(state.History)-1].Detail)
	}
}

func inspect(target string, state *TranspilationState, out io.Writer) {
	missing := func(what string) {
		fmt.Fprintf(out, "%s not yet available, keep stepping.\n", what)
	}

	switch strings.ToLower(target) {
	case "python", "py", "dynamic":
		if state.PythonGraph == nil {
			missing("Python graph")
			return
		}
		fmt.Fprint(out, hir.DumpPython(state.PythonGraph))
	case "c", "systems":
		if state.CGraph == nil {
			missing("C graph")
			return
		}
		fmt.Fprint(out, hir.DumpC(state.CGraph))
	case "unified":
		if state.UnifiedGraph == nil {
			missing("Unified graph")
			return
		}
		fmt.Fprint(out, hir.DumpUnified(state.UnifiedGraph))
	case "rust", "target":
		if state.RustCode == "" {
			missing("Rust code")
			return
		}
		fmt.Fprint(out, state.RustCode)
	default:
		fmt.Fprintf(out, "Unknown target %q. Try python, c, unified, or rust.\n", target)
	}
}

func listBreakpoints(stepper *Stepper, out io.Writer) {
	bps := stepper.Breakpoints()
	if len(bps) == 0 {
		fmt.Fprintln(out, "No breakpoints set.")
		return
	}
	fmt.Fprintln(out, color.New(color.FgGreen, color.Bold).Sprint("Breakpoints:"))
	for i, bp := range bps {
		fmt.Fprintf(out, "  [%d] %s\n", i, bp)
	}
}

func printHelp(out io.Writer) {
	cmd := color.New(color.FgYellow)
	fmt.Fprintln(out, color.New(color.FgGreen, color.Bold).Sprint("Commands:"))
	fmt.Fprintf(out, "  %s            advance one phase (empty line works too)\n", cmd.Sprint("step, s"))
	fmt.Fprintf(out, "  %s        run until a breakpoint or completion\n", cmd.Sprint("continue, c"))
	fmt.Fprintf(out, "  %s       show everything produced so far\n", cmd.Sprint("visualize, v"))
	fmt.Fprintf(out, "  %s   show one artifact: python, c, unified, rust\n", cmd.Sprint("inspect <target>"))
	fmt.Fprintf(out, "  %s     add a breakpoint: boundary, phase <name>, function <name>\n", cmd.Sprint("break <type>"))
	fmt.Fprintf(out, "  %s            list breakpoints\n", cmd.Sprint("list, l"))
	fmt.Fprintf(out, "  %s        remove breakpoint by number\n", cmd.Sprint("clear <num>"))
	fmt.Fprintf(out, "  %s         show this help\n", cmd.Sprint("help, h, ?"))
	fmt.Fprintf(out, "  %s      leave the debugger\n", cmd.Sprint("quit, q, exit"))
}
