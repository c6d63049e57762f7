package typechecker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
	"github.com/funvibe/pfn/internal/types"
)

func TestRegisterInterfaceMakesMethodCallable(t *testing.T) {
	result := checkSource(t, `interface Greet a where { greet: a -> String }
type Animal = Dog | Cat
impl Greet Animal where { def greet x = "hi" }
def main = greet Dog`)
	typ, ok := result.DefTypes["main"]
	require.True(t, ok)
	assert.Equal(t, types.String.String(), typ.String())
}

func TestImplMethodWrongReturnTypeFails(t *testing.T) {
	toks, lexErr := lexer.Tokenize(`interface Greet a where { greet: a -> String }
type Animal = Dog | Cat
impl Greet Animal where { def greet x = 42 }`)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	c := NewChecker()
	_, cerr := c.CheckModule(mod)
	require.Error(t, cerr)
	assert.Contains(t, cerr.Error(), "does not match")
}

func TestCallingClassMethodWithNoInstanceFails(t *testing.T) {
	toks, lexErr := lexer.Tokenize(`interface Greet a where { greet: a -> String }
def main = greet 1`)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	c := NewChecker()
	_, cerr := c.CheckModule(mod)
	require.Error(t, cerr)
	assert.Contains(t, cerr.Error(), "unsatisfied class constraint")
}

func TestImplMissingRequiredMethodFails(t *testing.T) {
	toks, lexErr := lexer.Tokenize(`interface Greet a where { greet: a -> String, farewell: a -> String }
type Animal = Dog
impl Greet Animal where { def greet x = "hi" }`)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	c := NewChecker()
	_, cerr := c.CheckModule(mod)
	require.Error(t, cerr)
	assert.Contains(t, cerr.Error(), "missing method")
}
