package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"

	"github.com/funvibe/pfn/pkg/compiler"
)

// cmdCompile implements `pfn compile <in> [-o out] [--typecheck]
// [--dump-ast] [--dump-types] [--verbose]` (SPEC_FULL section 2.3).
// --typecheck is the "(optionally typecheck)" knob spec.md section 6
// leaves to the caller: without it, compile only tokenizes, parses,
// and generates, so a source file with a type error still produces
// (possibly nonsensical) host code; with it, a type error aborts the
// compile before anything is written.
func cmdCompile(args []string) {
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

	start := time.Now()

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

	if f.typecheck {
		var checked *compiler.ModuleResult
		mod, checked, err = compiler.CheckModule(mod)
		if err != nil {
			report(f.input, err)
			os.Exit(1)
		}
		if f.dumpTypes {
			pretty.Println(checked.DefTypes)
		}
	}

	out, err := compiler.GenerateModule(mod)
	if err != nil {
		report(f.input, err)
		os.Exit(1)
	}

	outPath := f.output
	if outPath == "" {
		outPath = strings.TrimSuffix(f.input, filepath.Ext(f.input)) + ".py"
	}
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", outPath, err)
		os.Exit(1)
	}

	if f.verbose {
		fmt.Fprintf(os.Stderr, "compiled %s -> %s (%s in %s)\n",
			f.input, outPath, humanize.Bytes(uint64(len(out))), time.Since(start))
	}
}
