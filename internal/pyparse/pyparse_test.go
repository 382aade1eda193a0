package pyparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pybridge/internal/hir"
)

func TestParseFunctionWithReturnCall(t *testing.T) {
	source := []byte("def use_len(my_list):\n    return len(my_list)\n")

	mod, err := ParsePython(source, "listops.py")
	require.NoError(t, err)
	assert.Equal(t, "listops", mod.Name)
	require.Len(t, mod.Body, 1)

	fn, ok := mod.Body[0].(*hir.PyFunction)
	require.True(t, ok)
	assert.Equal(t, "use_len", fn.Name)
	assert.Equal(t, hir.Public, fn.Visibility)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "my_list", fn.Params[0].Name)

	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*hir.PyReturn)
	require.True(t, ok)

	call, ok := ret.Value.(*hir.PyCall)
	require.True(t, ok)
	assert.Equal(t, "len", call.CalleeName())
	require.Len(t, call.Args, 1)
	arg := call.Args[0].(*hir.PyVariable)
	assert.Equal(t, "my_list", arg.Name)
}

func TestParseMethodCallPrependsReceiver(t *testing.T) {
	source := []byte("my_vector.append(item)\n")

	mod, err := ParsePython(source, "vec.py")
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	call, ok := mod.Body[0].(*hir.PyCall)
	require.True(t, ok)
	assert.Equal(t, "append", call.CalleeName())

	require.Len(t, call.Args, 2)
	recv := call.Args[0].(*hir.PyVariable)
	assert.Equal(t, "my_vector", recv.Name)
	item := call.Args[1].(*hir.PyVariable)
	assert.Equal(t, "item", item.Name)
}

func TestParseLiteralArguments(t *testing.T) {
	source := []byte("items.insert(0, \"first\")\n")

	mod, err := ParsePython(source, "lit.py")
	require.NoError(t, err)

	call := mod.Body[0].(*hir.PyCall)
	require.Len(t, call.Args, 3)

	idx := call.Args[1].(*hir.PyLiteral)
	assert.Equal(t, hir.IntLiteral(0), idx.Value)

	s := call.Args[2].(*hir.PyLiteral)
	assert.Equal(t, hir.StrLiteral("first"), s.Value)
}

func TestParseUnderscoreFunctionIsPrivate(t *testing.T) {
	source := []byte("def _helper():\n    return None\n")

	mod, err := ParsePython(source, "m.py")
	require.NoError(t, err)

	fn := mod.Body[0].(*hir.PyFunction)
	assert.Equal(t, hir.Private, fn.Visibility)
}

func TestParseAttachesSourceLocations(t *testing.T) {
	source := []byte("def f():\n    return len(x)\n")

	mod, err := ParsePython(source, "loc.py")
	require.NoError(t, err)

	fn := mod.Body[0].(*hir.PyFunction)
	require.NotNil(t, fn.Metadata)
	require.NotNil(t, fn.Metadata.Source)
	assert.Equal(t, "loc.py", fn.Metadata.Source.File)
	assert.Equal(t, 1, fn.Metadata.Source.Line)
	assert.Equal(t, hir.LangPython, fn.Metadata.Source.Language)

	ret := fn.Body[0].(*hir.PyReturn)
	call := ret.Value.(*hir.PyCall)
	require.NotNil(t, call.Metadata)
	require.NotNil(t, call.Metadata.Source)
	assert.Equal(t, 2, call.Metadata.Source.Line)
	assert.Equal(t, 12, call.Metadata.Source.Column)
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	source := []byte("def broken(:\n")

	_, err := ParsePython(source, "broken.py")
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "broken.py", syntaxErr.File)
	assert.Contains(t, err.Error(), "broken.py")
}

func TestDumpASTShowsTree(t *testing.T) {
	source := []byte("len(x)\n")

	out, err := DumpAST(source, "t.py")
	require.NoError(t, err)
	assert.Contains(t, out, "module")
	assert.Contains(t, out, "call")
	assert.Contains(t, out, `"len"`)
}
