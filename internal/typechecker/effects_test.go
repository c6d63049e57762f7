package typechecker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
	"github.com/funvibe/pfn/internal/types"
)

func inferEffects(t *testing.T, src string) (types.Type, types.EffectSet) {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	require.Len(t, mod.Declarations, 1)
	def, ok := mod.Declarations[0].(*ast.DefDecl)
	require.True(t, ok)

	c := NewChecker()
	_, err = c.CheckModule(mod)
	require.NoError(t, err)

	typ, eff, err := c.InferWithEffects(def.Value, types.NewEnv())
	require.NoError(t, err)
	return typ, eff
}

func TestInferWithEffectsPureExpressionIsEmpty(t *testing.T) {
	_, eff := inferEffects(t, `def main = 1 + 2`)
	assert.True(t, eff.IsPure())
}

func TestInferWithEffectsPerformCarriesTheEffectAtom(t *testing.T) {
	_, eff := inferEffects(t, `def main = perform State.get()`)
	require.Len(t, eff, 1)
	assert.Equal(t, "State", eff[0].Kind)
}

func TestInferWithEffectsHandleDischargesItsOwnOperations(t *testing.T) {
	_, eff := inferEffects(t, `def main = handle perform State.get() with
		| get () => 0`)
	assert.True(t, eff.IsPure())
}

func TestInferWithEffectsHandleLeavesOtherEffectsOpen(t *testing.T) {
	_, eff := inferEffects(t, `def main = handle perform Console.log(perform State.get()) with
		| get () => 0`)
	require.Len(t, eff, 1)
	assert.Equal(t, "Console", eff[0].Kind)
}

func TestUnionEffectsIsIdempotent(t *testing.T) {
	a := types.Custom("IO")
	union := types.UnionEffects(a, a, a)
	assert.Len(t, union, 1)
}
