package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepSpellings(t *testing.T) {
	for _, input := range []string{"step", "s", "", "   "} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, CmdStep, cmd.Kind, "input %q", input)
	}
}

func TestParseContinueSpellings(t *testing.T) {
	for _, input := range []string{"continue", "c"} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err)
		assert.Equal(t, CmdContinue, cmd.Kind)
	}
}

func TestParseVisualizeSpellings(t *testing.T) {
	for _, input := range []string{"visualize", "v"} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err)
		assert.Equal(t, CmdVisualize, cmd.Kind)
	}
}

func TestParseInspect(t *testing.T) {
	cmd, err := ParseCommand("inspect unified")
	require.NoError(t, err)
	assert.Equal(t, CmdInspect, cmd.Kind)
	assert.Equal(t, "unified", cmd.Target)

	cmd, err = ParseCommand("i rust")
	require.NoError(t, err)
	assert.Equal(t, "rust", cmd.Target)

	_, err = ParseCommand("inspect")
	assert.Error(t, err, "inspect needs a target")
}

func TestParseBreakBoundary(t *testing.T) {
	cmd, err := ParseCommand("break boundary")
	require.NoError(t, err)
	assert.Equal(t, CmdBreak, cmd.Kind)
	require.NotNil(t, cmd.Breakpoint)
	assert.Equal(t, BreakBoundary, cmd.Breakpoint.Kind)
}

func TestParseBreakPhase(t *testing.T) {
	cmd, err := ParseCommand("b phase Unified HIR")
	require.NoError(t, err)
	require.NotNil(t, cmd.Breakpoint)
	assert.Equal(t, BreakPhase, cmd.Breakpoint.Kind)
	assert.Equal(t, "Unified HIR", cmd.Breakpoint.Phase)

	_, err = ParseCommand("break phase")
	assert.Error(t, err)
}

func TestParseBreakFunction(t *testing.T) {
	for _, input := range []string{"break function list_length", "break fn list_length"} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, BreakFunction, cmd.Breakpoint.Kind)
		assert.Equal(t, "list_length", cmd.Breakpoint.Function)
	}
}

func TestParseBreakUnknownType(t *testing.T) {
	_, err := ParseCommand("break nowhere")
	assert.Error(t, err)
}

func TestParseListAndClear(t *testing.T) {
	cmd, err := ParseCommand("list")
	require.NoError(t, err)
	assert.Equal(t, CmdList, cmd.Kind)

	cmd, err = ParseCommand("l")
	require.NoError(t, err)
	assert.Equal(t, CmdList, cmd.Kind)

	cmd, err = ParseCommand("clear 2")
	require.NoError(t, err)
	assert.Equal(t, CmdClear, cmd.Kind)
	assert.Equal(t, 2, cmd.Index)

	_, err = ParseCommand("clear")
	assert.Error(t, err)
}

func TestParseHelpSpellings(t *testing.T) {
	for _, input := range []string{"help", "h", "?"} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, CmdHelp, cmd.Kind)
	}
}

func TestParseQuitSpellings(t *testing.T) {
	for _, input := range []string{"quit", "q", "exit"} {
		cmd, err := ParseCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, CmdQuit, cmd.Kind)
	}
}

func TestParseIgnoresCommandCase(t *testing.T) {
	cases := map[string]CommandKind{
		"STEP":     CmdStep,
		"Step":     CmdStep,
		"Continue": CmdContinue,
		"HELP":     CmdHelp,
		"Quit":     CmdQuit,
	}
	for input, want := range cases {
		cmd, err := ParseCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, cmd.Kind, "input %q", input)
	}

	cmd, err := ParseCommand("Break BOUNDARY")
	require.NoError(t, err)
	require.NotNil(t, cmd.Breakpoint)
	assert.Equal(t, BreakBoundary, cmd.Breakpoint.Kind)
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := ParseCommand("teleport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestBreakpointRendering(t *testing.T) {
	assert.Equal(t, "Boundary Elimination", Breakpoint{Kind: BreakBoundary}.String())
	assert.Equal(t, "Phase: Optimized", Breakpoint{Kind: BreakPhase, Phase: "Optimized"}.String())
	assert.Equal(t, "Function: list_length", Breakpoint{Kind: BreakFunction, Function: "list_length"}.String())
}
