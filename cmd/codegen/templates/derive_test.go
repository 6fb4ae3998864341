package templates

import (
	"go/format"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeParams(t *testing.T) {
	assert.Equal(t, "T0", typeParams(1))
	assert.Equal(t, "T0, T1, T2", typeParams(3))
	assert.Equal(t, "", typeParams(0))
}

func TestIndexed(t *testing.T) {
	assert.Equal(t, "erase(src0), erase(src1)", indexed("erase(src%[1]d)", 2, ", "))
	assert.Equal(t, "a0b0|a1b1", indexed("a%[1]db%[1]d", 2, "|"))
}

func TestDeriveGenIsFormatted(t *testing.T) {
	out := DeriveGen(4)

	formatted, err := format.Source([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, out, string(formatted))
}

func TestDeriveGenFunctions(t *testing.T) {
	out := DeriveGen(3)

	assert.Contains(t, out, "// Code generated by cmd/codegen. DO NOT EDIT.")
	assert.Contains(t, out, "func Derive2[T0, T1, O any](")
	assert.Contains(t, out, "func Derive2Manual[T0, T1, O any](")
	assert.Contains(t, out, "func Derive3[T0, T1, T2, O any](")
	assert.Contains(t, out, "\tfn func(T0, T1, T2, func(O), func(Updater[O])) (Cleanup, error),\n")
	assert.Contains(t, out, "\t\t\tvalueAt[T2](values, 2),\n")
	assert.NotContains(t, out, "Derive4")
}

func TestCommittedDeriveGenIsCurrent(t *testing.T) {
	committed, err := os.ReadFile("../../../store/derive_gen.go")
	require.NoError(t, err)

	generated, err := format.Source([]byte(DeriveGen(4)))
	require.NoError(t, err)
	assert.Equal(t, string(generated), string(committed), "run cmd/codegen to refresh store/derive_gen.go")
}
