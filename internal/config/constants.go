// Package config carries pfn's version info, source-file extension
// rules, built-in name tables, and process-wide mode flags.
//
// Adapted from the teacher's internal/config/constants.go: same
// package shape (Version var, SourceFileExt(ensions), TrimSourceExt,
// HasSourceExt, IsTestMode-style flags, built-in name constant
// blocks), retargeted at pfn's own source extension and prelude names.
package config

// Version is pfn's current release version, set at build time via
// -ldflags, matching the teacher's own release-tooling convention.
var Version = "0.1.0"

const SourceFileExt = ".pfn"

// SourceFileExtensions are all recognised source file extensions.
var SourceFileExtensions = []string{".pfn"}

// TrimSourceExt removes a recognised source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognised source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode follows the teacher's own IsTestMode convention: a
// package var, never re-set per call. No package in this module sets
// or reads it; the golden-fixture harness (internal/pipeline) runs
// without it.
var IsTestMode = false

// IsGoldenMode is a companion flag for golden-fixture runs. No package
// reads it: fresh type variables are always named t0, t1, ... by
// types.Fresh, whatever its value.
var IsGoldenMode = false

// Built-in class names (the default context installed by
// internal/classes.NewDefaultContext).
const (
	EqClassName         = "Eq"
	OrdClassName         = "Ord"
	ShowClassName        = "Show"
	ReadClassName        = "Read"
	NumClassName         = "Num"
	FractionalClassName  = "Fractional"
	FunctorClassName     = "Functor"
	ApplicativeClassName = "Applicative"
	MonadClassName       = "Monad"
	FoldableClassName    = "Foldable"
	TraversableClassName = "Traversable"
	SemigroupClassName   = "Semigroup"
	MonoidClassName      = "Monoid"
)

// Built-in enumerable sum types recognised by exhaustiveness checking.
const (
	OptionTypeName  = "Option"
	ResultTypeName  = "Result"
	OrderingTypeName = "Ordering"

	SomeCtorName = "Some"
	NoneCtorName = "None"
	OkCtorName   = "Ok"
	ErrorCtorName = "Error"
	LTCtorName   = "LT"
	EQCtorName   = "EQ"
	GTCtorName   = "GT"
)

// HostReservedWords are identifiers the generated host source cannot
// bind directly (its keyword set). internal/codegen renames any pfn
// identifier that collides with one of these by wrapping it in
// underscores (`_<name>_`), a stable rule. pfn identifiers may
// themselves start and end with `_`, so a source name such as `_class_`
// is spelled the same as the renamed `class`.
var HostReservedWords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// Known directive names accepted by a leading `directive "name"`
// pragma (SPEC_FULL section 4). Anything else is kept in the AST with
// DirectiveDecl.Known false rather than raising a parse error; no stage
// emits a warning for it.
var KnownDirectives = map[string]bool{
	"strict-arity": true,
	"no-warnings":  true,
}
