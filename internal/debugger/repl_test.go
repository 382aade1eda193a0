package debugger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, script string) string {
	t.Helper()
	st := lenStepper(t)
	var out bytes.Buffer
	require.NoError(t, RunREPL(st, strings.NewReader(script), &out))
	return out.String()
}

func TestReplStepAndQuit(t *testing.T) {
	out := runSession(t, "step\nquit\n")
	assert.Contains(t, out, "Python Parsed")
	assert.Contains(t, out, "Leaving debugger.")
}

func TestReplEmptyLineSteps(t *testing.T) {
	out := runSession(t, "\n\nquit\n")
	assert.Contains(t, out, "Python Parsed")
	assert.Contains(t, out, "Python HIR")
}

func TestReplContinueAndInspectRust(t *testing.T) {
	out := runSession(t, "continue\ninspect rust\nquit\n")
	assert.Contains(t, out, "Complete")
	assert.Contains(t, out, "my_list.len()")
}

func TestReplInspectBeforeAvailable(t *testing.T) {
	out := runSession(t, "inspect rust\nquit\n")
	assert.Contains(t, out, "not yet available")
}

func TestReplInspectUnknownTarget(t *testing.T) {
	out := runSession(t, "inspect nonsense\nquit\n")
	assert.Contains(t, out, `Unknown target "nonsense"`)
}

func TestReplBreakpointLifecycle(t *testing.T) {
	out := runSession(t, "break boundary\nlist\nclear 0\nlist\nquit\n")
	assert.Contains(t, out, "Breakpoint added:")
	assert.Contains(t, out, "[0] Boundary Elimination")
	assert.Contains(t, out, "Cleared breakpoint 0.")
	assert.Contains(t, out, "No breakpoints set.")
}

func TestReplStepPastComplete(t *testing.T) {
	out := runSession(t, "continue\nstep\nquit\n")
	assert.Contains(t, out, "Transpilation already complete.")
}

func TestReplVisualizeShowsState(t *testing.T) {
	out := runSession(t, "continue\nvisualize\nquit\n")
	assert.Contains(t, out, "Python graph:")
	assert.Contains(t, out, "Unified graph:")
	assert.Contains(t, out, "Rust code:")
	assert.Contains(t, out, "History:")
}

func TestReplBadCommandKeepsSessionAlive(t *testing.T) {
	out := runSession(t, "teleport\nstep\nquit\n")
	assert.Contains(t, out, "teleport")
	assert.Contains(t, out, "Python Parsed")
}

func TestReplHelpListsCommands(t *testing.T) {
	out := runSession(t, "help\nquit\n")
	assert.Contains(t, out, "visualize")
	assert.Contains(t, out, "breakpoint")
}

func TestReplEOFExits(t *testing.T) {
	st := lenStepper(t)
	var out bytes.Buffer
	require.NoError(t, RunREPL(st, strings.NewReader("step\n"), &out))
	assert.Contains(t, out.String(), "Python Parsed")
}
