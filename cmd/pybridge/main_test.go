// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPatternsCommandListsAllPairs(t *testing.T) {
	out, err := execute(t, "patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "11 supported patterns:")
	assert.Contains(t, out, "len() + list_length() → Vec::len()")
	assert.Contains(t, out, "append() + PyList_Append() → Vec::push()")
	assert.Contains(t, out, "keys() + PyDict_Keys() → HashMap::keys()")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pybridge")
	assert.Contains(t, out, version)
}

func TestCompileWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	pyPath := filepath.Join(dir, "input.py")
	cPath := filepath.Join(dir, "input.c")
	outPath := filepath.Join(dir, "out.rs")

	require.NoError(t, os.WriteFile(pyPath,
		[]byte("def use_len(my_list):\n    return len(my_list)\n"), 0o644))
	require.NoError(t, os.WriteFile(cPath,
		[]byte("static Py_ssize_t\nlist_length(PyListObject *self) {\n    return 0;\n}\n"), 0o644))

	_, err := execute(t, "compile", "--python", pyPath, "--c", cPath, "--output", outPath)
	require.NoError(t, err)

	generated, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "my_list.len()\n", string(generated))
}

func TestCompileFailsOnUnknownPair(t *testing.T) {
	dir := t.TempDir()
	pyPath := filepath.Join(dir, "input.py")
	cPath := filepath.Join(dir, "input.c")

	require.NoError(t, os.WriteFile(pyPath, []byte("frobnicate(x)\n"), 0o644))
	require.NoError(t, os.WriteFile(cPath, []byte("void do_frob(void) {}\n"), 0o644))

	_, err := execute(t, "compile", "--python", pyPath, "--c", cPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestCompileRequiresInputFlags(t *testing.T) {
	_, err := execute(t, "compile")
	assert.Error(t, err)
}

func TestDebugVisualizeRejectsUnknownExtension(t *testing.T) {
	_, err := execute(t, "debug", "visualize", "input.rs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected .py, .c or .h")
}

func TestDebugVisualizePython(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.py")
	require.NoError(t, os.WriteFile(path, []byte("len(x)\n"), 0o644))

	out, err := execute(t, "debug", "visualize", path)
	require.NoError(t, err)
	assert.Contains(t, out, "call")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2.00min", formatDuration(2*time.Minute))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.5ms", formatDuration(2500*time.Microsecond))
	assert.Equal(t, "1.5μs", formatDuration(1500*time.Nanosecond))
	assert.Equal(t, "800ns", formatDuration(800*time.Nanosecond))
}
