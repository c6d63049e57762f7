package main

import (
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/funvibe/pfn/pkg/compiler"
)

// cmdCheck implements `pfn check <in> [--dump-types]`: tokenize, parse,
// and typecheck only — never generates host code, matching spec.md
// section 6's `typecheck_source` rather than `compile_source`.
func cmdCheck(args []string) {
	f, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	src, err := readSource(f.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	tokens, lexErr := compiler.Tokenize(src)
	if lexErr != nil {
		report(f.input, lexErr)
		os.Exit(1)
	}

	mod, err := compiler.Parse(tokens)
	if err != nil {
		report(f.input, err)
		os.Exit(1)
	}

	if f.dumpAST {
		pretty.Println(mod)
	}

	_, checked, err := compiler.CheckModule(mod)
	if err != nil {
		report(f.input, err)
		os.Exit(1)
	}

	if f.dumpTypes {
		pretty.Println(checked.DefTypes)
	}

	fmt.Printf("%s: ok\n", f.input)
}
