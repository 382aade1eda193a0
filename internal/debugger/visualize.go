package debugger

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"pybridge/internal/cparse"
	"pybridge/internal/hir"
	"pybridge/internal/pyparse"
)

// VisualizePython renders a Python source file: the numbered source
// listing followed by its syntax tree. Used by the debug visualize
// command outside a stepping session.
func VisualizePython(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := pyparse.DumpAST(source, path)
	if err != nil {
		return "", err
	}
	return renderFileView("Python", path, source, tree), nil
}

// VisualizeC renders a C source file the same way.
func VisualizeC(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := cparse.DumpAST(source, path)
	if err != nil {
		return "", err
	}
	return renderFileView("C", path, source, tree), nil
}

func renderFileView(lang, path string, source []byte, tree string) string {
	var b strings.Builder

	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgYellow, color.Bold)

	lines := strings.Split(strings.TrimRight(string(source), "\n"), "\n")
	fmt.Fprintf(&b, "%s\n", header.Sprintf("%s AST: %s", lang, path))
	fmt.Fprintf(&b, "%s %d lines\n\n", color.New(color.Bold).Sprint("Size:"), len(lines))

	fmt.Fprintf(&b, "%s\n", section.Sprint("--- Source ---"))
	for i, line := range lines {
		fmt.Fprintf(&b, "%3d | %s\n", i+1, line)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", section.Sprint("--- Syntax Tree ---"))
	b.WriteString(tree)
	return b.String()
}

// renderState renders everything the run has produced so far.
func renderState(state *TranspilationState) string {
	var b strings.Builder

	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgGreen, color.Bold)

	fmt.Fprintf(&b, "%s\n", header.Sprintf("=== State at step %d (%s) ===", state.StepCount, state.Phase.Name()))

	if state.PythonGraph != nil {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("Python graph:"))
		b.WriteString(hir.DumpPython(state.PythonGraph))
	}
	if state.CGraph != nil {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("C graph:"))
		b.WriteString(hir.DumpC(state.CGraph))
	}
	if state.UnifiedGraph != nil {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("Unified graph:"))
		b.WriteString(hir.DumpUnified(state.UnifiedGraph))
	}
	if state.Optimized != nil {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("Optimized graph:"))
		b.WriteString(hir.DumpUnified(state.Optimized))
	}
	if state.RustCode != "" {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("Rust code:"))
		b.WriteString(state.RustCode)
	}
	if len(state.History) > 0 {
		fmt.Fprintf(&b, "\n%s\n", section.Sprint("History:"))
		for i, tr := range state.History {
			fmt.Fprintf(&b, "  %2d. %s -> %s: %s\n", i+1, tr.From.Name(), tr.To.Name(), tr.Detail)
		}
	}
	return b.String()
}
