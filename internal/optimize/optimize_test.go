package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pybridge/internal/hir"
)

func boundaryCall(pattern string, args ...hir.UnifiedHIR) *hir.UnifiedCall {
	pyID, cID := hir.NodeID(1), hir.NodeID(2)
	return &hir.UnifiedCall{
		NodeID:     3,
		TargetLang: hir.LangRust,
		Callee:     "Vec::len",
		Args:       args,
		Source:     hir.LangPython,
		Mapping: &hir.CrossMapping{
			PythonNode: &pyID,
			CNode:      &cID,
			Pattern:    pattern,
		},
		Metadata: hir.NewMetadata(),
	}
}

func TestBoundaryEliminationFlipsFlag(t *testing.T) {
	call := boundaryCall("len")
	require.False(t, call.Mapping.BoundaryEliminated)

	out, err := StandardPipeline().Run(call)
	require.NoError(t, err)

	optimized := out.(*hir.UnifiedCall)
	assert.True(t, optimized.Mapping.BoundaryEliminated)
	assert.Equal(t, hir.LangRust, optimized.TargetLang)
}

func TestBoundaryEliminationDoesNotMutateInput(t *testing.T) {
	call := boundaryCall("len")
	_, err := StandardPipeline().Run(call)
	require.NoError(t, err)
	assert.False(t, call.Mapping.BoundaryEliminated, "input graph stays untouched")
}

func TestBoundaryEliminationRecursesIntoArgs(t *testing.T) {
	inner := boundaryCall("append")
	outer := boundaryCall("len", inner)

	out, err := StandardPipeline().Run(outer)
	require.NoError(t, err)

	optimized := out.(*hir.UnifiedCall)
	require.Len(t, optimized.Args, 1)
	innerOut := optimized.Args[0].(*hir.UnifiedCall)
	assert.True(t, innerOut.Mapping.BoundaryEliminated)
}

func TestEliminationIsMonotone(t *testing.T) {
	call := boundaryCall("len")

	once, err := StandardPipeline().Run(call)
	require.NoError(t, err)
	twice, err := StandardPipeline().Run(once)
	require.NoError(t, err)

	assert.True(t, twice.(*hir.UnifiedCall).Mapping.BoundaryEliminated,
		"a second run never un-eliminates")
}

func TestPassLeavesNonCallNodesAlone(t *testing.T) {
	v := &hir.UnifiedVariable{NodeID: 1, Name: "my_list", VarType: hir.Unknown{}, Source: hir.LangPython}
	out, err := StandardPipeline().Run(v)
	require.NoError(t, err)
	assert.Same(t, v, out)
}

func TestStandardPipelineHasExactlyOnePass(t *testing.T) {
	assert.Equal(t, 1, StandardPipeline().PassCount())
}

func TestPassMetadata(t *testing.T) {
	pass := &BoundaryElimination{}
	assert.Equal(t, "BoundaryElimination", pass.Name())
	assert.NotEmpty(t, pass.Description())
}

func TestCountEliminated(t *testing.T) {
	inner := boundaryCall("append")
	outer := boundaryCall("len", inner)
	assert.Equal(t, 0, CountEliminated(outer))

	out, err := StandardPipeline().Run(outer)
	require.NoError(t, err)
	assert.Equal(t, 2, CountEliminated(out))
}
