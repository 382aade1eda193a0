package hir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpPythonTree(t *testing.T) {
	mod := &PyModule{
		Name: "listops",
		Body: []PythonHIR{
			&PyFunction{
				NodeID: 1,
				Name:   "use_len",
				Params: []PyParam{{Name: "my_list"}},
				Body: []PythonHIR{
					&PyReturn{NodeID: 2, Value: &PyCall{
						NodeID: 3,
						Callee: &PyVariable{NodeID: 4, Name: "len"},
						Args:   []PythonHIR{&PyVariable{NodeID: 5, Name: "my_list"}},
					}},
				},
			},
		},
	}

	out := DumpPython(mod)
	assert.Contains(t, out, `Module "listops"`)
	assert.Contains(t, out, "Function use_len(my_list) #1")
	assert.Contains(t, out, "Call len #3")
	assert.Contains(t, out, "Variable my_list #5")
}

func TestDumpUnifiedShowsMappingState(t *testing.T) {
	pyID, cID := NodeID(7), NodeID(9)
	call := &UnifiedCall{
		NodeID:     1,
		TargetLang: LangRust,
		Callee:     "Vec::len",
		Source:     LangPython,
		Mapping:    &CrossMapping{PythonNode: &pyID, CNode: &cID, Pattern: "len"},
		Metadata:   &Metadata{DebugNotes: []string{"dropped argument of kind Return: no conversion rule"}},
	}

	out := DumpUnified(call)
	assert.Contains(t, out, "{pattern len, boundary pending}")
	assert.Contains(t, out, "note: dropped argument of kind Return")

	call.Mapping.BoundaryEliminated = true
	assert.Contains(t, DumpUnified(call), "{pattern len, boundary eliminated}")
}

func TestDumpCFunctionSignature(t *testing.T) {
	fn := &CFunction{
		NodeID:     2,
		Name:       "list_length",
		ReturnType: CPython{Kind: PySsizeT},
		Params:     []CParam{{Name: "self", Type: CPython{Kind: PyListObjectHandle}}},
		Storage:    StorageStatic,
	}

	out := DumpC(fn)
	assert.Contains(t, out, "static")
	assert.Contains(t, out, "list_length")
	assert.Contains(t, out, "#2")
}

func TestDumpCStruct(t *testing.T) {
	st := &CStructDecl{
		NodeID: 3,
		Name:   "PyListObject",
		Fields: []CField{
			{Name: "ob_item", Type: CPython{Kind: PyObjectHandle}},
			{Name: "allocated", Type: CPython{Kind: PySsizeT}},
		},
	}

	out := DumpC(st)
	assert.Contains(t, out, "Struct PyListObject #3")
	assert.Contains(t, out, "Field")
	assert.Contains(t, out, "allocated")
}
