package cparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pybridge/internal/hir"
)

func TestParseStaticCPythonFunction(t *testing.T) {
	source := []byte(`
static Py_ssize_t
list_length(PyListObject *self) {
    return 0;
}
`)

	unit, err := ParseC(source, "listobject.c")
	require.NoError(t, err)
	assert.Equal(t, "listobject", unit.Name)
	require.Len(t, unit.Decls, 1)

	fn, ok := unit.Decls[0].(*hir.CFunction)
	require.True(t, ok)
	assert.Equal(t, "list_length", fn.Name)
	assert.Equal(t, hir.StorageStatic, fn.Storage)
	assert.Equal(t, hir.ModuleLevel, fn.Visibility)
	assert.Equal(t, hir.CPython{Kind: hir.PySsizeT}, fn.ReturnType)

	require.Len(t, fn.Params, 1)
	assert.Equal(t, "self", fn.Params[0].Name)
	assert.Equal(t, hir.CPython{Kind: hir.PyListObjectHandle}, fn.Params[0].Type)
}

func TestParsePointerReturningFunction(t *testing.T) {
	source := []byte(`
PyObject *
PyDict_GetItem(PyObject *dict, PyObject *key) {
    return 0;
}
`)

	unit, err := ParseC(source, "dictobject.c")
	require.NoError(t, err)

	fn := unit.Decls[0].(*hir.CFunction)
	assert.Equal(t, "PyDict_GetItem", fn.Name)
	assert.Equal(t, hir.StorageNone, fn.Storage)
	// PyObject* stays a CPython handle rather than a raw pointer.
	assert.Equal(t, hir.CPython{Kind: hir.PyObjectHandle}, fn.ReturnType)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "dict", fn.Params[0].Name)
	assert.Equal(t, "key", fn.Params[1].Name)
}

func TestParseVoidParameterListIsEmpty(t *testing.T) {
	source := []byte("void PyList_Append(void) {}\n")

	unit, err := ParseC(source, "t.c")
	require.NoError(t, err)

	fn := unit.Decls[0].(*hir.CFunction)
	assert.Equal(t, "PyList_Append", fn.Name)
	assert.Empty(t, fn.Params)
	assert.Equal(t, hir.CPrimitive{Kind: hir.CVoid}, fn.ReturnType)
}

func TestParseBodyReturnLiteral(t *testing.T) {
	source := []byte("int answer(void) { return 42; }\n")

	unit, err := ParseC(source, "t.c")
	require.NoError(t, err)

	fn := unit.Decls[0].(*hir.CFunction)
	require.Len(t, fn.Body, 1)
	ret := fn.Body[0].(*hir.CReturn)
	lit := ret.Value.(*hir.CLiteral)
	assert.Equal(t, hir.IntLiteral(42), lit.Value)
}

func TestParsePlainPointerParameter(t *testing.T) {
	source := []byte("void fill(int *buf) {}\n")

	unit, err := ParseC(source, "t.c")
	require.NoError(t, err)

	fn := unit.Decls[0].(*hir.CFunction)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, hir.CPointer{Inner: hir.CPrimitive{Kind: hir.CInt}}, fn.Params[0].Type)
}

func TestParseTypedefStruct(t *testing.T) {
	source := []byte(`
typedef struct {
    PyObject *ob_item;
    Py_ssize_t allocated;
} PyListObject;
`)

	unit, err := ParseC(source, "listobject.h")
	require.NoError(t, err)
	require.Len(t, unit.Decls, 1)

	st, ok := unit.Decls[0].(*hir.CStructDecl)
	require.True(t, ok)
	assert.Equal(t, "PyListObject", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "ob_item", st.Fields[0].Name)
	assert.Equal(t, hir.CPython{Kind: hir.PyObjectHandle}, st.Fields[0].Type)
	assert.Equal(t, "allocated", st.Fields[1].Name)
	assert.Equal(t, hir.CPython{Kind: hir.PySsizeT}, st.Fields[1].Type)
}

func TestParseTaggedStruct(t *testing.T) {
	source := []byte("struct entry { int key; char *value; };\n")

	unit, err := ParseC(source, "t.c")
	require.NoError(t, err)
	require.Len(t, unit.Decls, 1)

	st := unit.Decls[0].(*hir.CStructDecl)
	assert.Equal(t, "entry", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, hir.CPrimitive{Kind: hir.CInt}, st.Fields[0].Type)
	assert.Equal(t, hir.CPointer{Inner: hir.CPrimitive{Kind: hir.CChar}}, st.Fields[1].Type)
}

func TestParseForwardStructReferenceLiftsNothing(t *testing.T) {
	source := []byte("struct entry;\n")

	unit, err := ParseC(source, "t.c")
	require.NoError(t, err)
	assert.Empty(t, unit.Decls)
}

func TestParseSyntaxError(t *testing.T) {
	source := []byte("int broken( {\n")

	_, err := ParseC(source, "broken.c")
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "broken.c", syntaxErr.File)
}

func TestDumpASTShowsTree(t *testing.T) {
	source := []byte("int main(void) { return 0; }\n")

	out, err := DumpAST(source, "t.c")
	require.NoError(t, err)
	assert.Contains(t, out, "translation_unit")
	assert.Contains(t, out, "function_definition")
	assert.Contains(t, out, `"main"`)
}
