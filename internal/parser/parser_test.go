package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Module {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src)
	require.Nil(t, lexErr)
	mod, err := Parse(toks)
	require.NoError(t, err)
	return mod
}

func TestParseSimpleDef(t *testing.T) {
	mod := parseSource(t, "def add x y = x + y")
	require.Len(t, mod.Declarations, 1)
	def, ok := mod.Declarations[0].(*ast.DefDecl)
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "x", def.Params[0].Name)
	assert.Equal(t, "y", def.Params[1].Name)
	bin, ok := def.Value.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", string(bin.Op))
}

func TestParseLetLambdaApplication(t *testing.T) {
	mod := parseSource(t, "def main = let id = fn x => x in (id 1, id True)")
	def := mod.Declarations[0].(*ast.DefDecl)
	let, ok := def.Value.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "id", let.Name)
	_, isLambda := let.Value.(*ast.Lambda)
	assert.True(t, isLambda)
	tuple, ok := let.Body.(*ast.TupleLit)
	require.True(t, ok)
	require.Len(t, tuple.Elements, 2)
	app, ok := tuple.Elements[0].(*ast.App)
	require.True(t, ok)
	fn, ok := app.Func.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "id", fn.Name)
}

func TestParseLetFuncRecursion(t *testing.T) {
	mod := parseSource(t, `def main =
		let fact n = if n == 0 then 1 else n * fact (n - 1) in
		fact 5`)
	def := mod.Declarations[0].(*ast.DefDecl)
	lf, ok := def.Value.(*ast.LetFunc)
	require.True(t, ok)
	assert.Equal(t, "fact", lf.Name)
	assert.Equal(t, []string{"n"}, lf.Params)
	_, isIf := lf.Value.(*ast.If)
	assert.True(t, isIf)
}

func TestParseMatchExhaustiveExample(t *testing.T) {
	mod := parseSource(t, `def describe opt = match opt with
		| Some x => x
		| None => 0`)
	def := mod.Declarations[0].(*ast.DefDecl)
	m, ok := def.Value.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	c0, ok := m.Cases[0].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, "Some", c0.Name)
	require.Len(t, c0.Args, 1)
	c1, ok := m.Cases[1].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, "None", c1.Name)
}

func TestParseConsIsRightAssociative(t *testing.T) {
	mod := parseSource(t, "def xs = 1 :: 2 :: []")
	def := mod.Declarations[0].(*ast.DefDecl)
	outer, ok := def.Value.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "::", string(outer.Op))
	_, ok = outer.Right.(*ast.BinOp)
	require.True(t, ok)
}

func TestParseTypeDeclRecordAndSum(t *testing.T) {
	mod := parseSource(t, `type Point = { x: Int, y: Int }
type Shape = Circle Point Int | Square Point Int`)
	require.Len(t, mod.Declarations, 2)

	point := mod.Declarations[0].(*ast.TypeDecl)
	assert.True(t, point.IsRecord)
	require.Len(t, point.RecordFields, 2)
	assert.Equal(t, "x", point.RecordFields[0].Name)

	shape := mod.Declarations[1].(*ast.TypeDecl)
	require.Len(t, shape.Constructors, 2)
	assert.Equal(t, "Circle", shape.Constructors[0].Name)
	require.Len(t, shape.Constructors[0].Fields, 2)
}

func TestParseExportedDef(t *testing.T) {
	mod := parseSource(t, `@py.export("double_it") def double x = x * 2`)
	def, ok := mod.Declarations[0].(*ast.DefDecl)
	require.True(t, ok)
	assert.True(t, def.IsExported)
	assert.Equal(t, "double_it", def.ExportName)
	assert.Equal(t, "double", def.Name)
}

func TestParseImportWithPythonPrefix(t *testing.T) {
	mod := parseSource(t, "import py.math as m")
	imp, ok := mod.Declarations[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.True(t, imp.IsPython)
	assert.Equal(t, "py.math", imp.Module)
	assert.Equal(t, "m", imp.Alias)
}

func TestParseDirectiveKnown(t *testing.T) {
	mod := parseSource(t, `directive "strict-arity"
def f x = x`)
	dir, ok := mod.Declarations[0].(*ast.DirectiveDecl)
	require.True(t, ok)
	assert.Equal(t, "strict-arity", dir.Name)
	assert.True(t, dir.Known)
}

func TestParseRecordLiteralAndUpdate(t *testing.T) {
	mod := parseSource(t, `def p = { x: 1, y: 2 }
def q = { p | x: 10 }`)
	p := mod.Declarations[0].(*ast.DefDecl)
	lit, ok := p.Value.(*ast.RecordLit)
	require.True(t, ok)
	require.Len(t, lit.Fields, 2)

	q := mod.Declarations[1].(*ast.DefDecl)
	upd, ok := q.Value.(*ast.RecordUpdate)
	require.True(t, ok)
	require.Len(t, upd.Fields, 1)
	assert.Equal(t, "x", upd.Fields[0].Name)
}

func TestParseHandleAndPerform(t *testing.T) {
	mod := parseSource(t, `def run = handle perform State.get() with
		get => 0`)
	def := mod.Declarations[0].(*ast.DefDecl)
	h, ok := def.Value.(*ast.HandleExpr)
	require.True(t, ok)
	require.Len(t, h.Handlers, 1)
	assert.Equal(t, "get", h.Handlers[0].Operation)
	perf, ok := h.Body.(*ast.PerformExpr)
	require.True(t, ok)
	assert.Equal(t, "State", perf.Effect)
	assert.Equal(t, "get", perf.Operation)
}

func TestParseInterfaceAndImpl(t *testing.T) {
	mod := parseSource(t, `interface Eq a where { eq: a }
impl Eq Int where { def eq x = x }`)
	iface := mod.Declarations[0].(*ast.InterfaceDecl)
	assert.Equal(t, "Eq", iface.Name)
	require.Len(t, iface.Methods, 1)

	impl := mod.Declarations[1].(*ast.ImplDecl)
	assert.Equal(t, "Eq", impl.ClassName)
	require.Len(t, impl.Methods, 1)
	assert.Equal(t, "eq", impl.Methods[0].Name)
	assert.Equal(t, []string{"x"}, impl.Methods[0].Params)
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	_, lexErr := lexer.Tokenize("def =")
	require.Nil(t, lexErr)
	toks, _ := lexer.Tokenize("def =")
	_, err := Parse(toks)
	require.Error(t, err)
}
