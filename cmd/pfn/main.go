// Command pfn is the compiler driver (spec.md section 6, SPEC_FULL
// section 2.3): subcommand dispatch, error reporting, and exit-code
// convention mirror cmd/funxy/main.go, scaled down to the three
// subcommands pfn's own stateless compile-then-optionally-run model
// needs — there is no bytecode bundle, embedder, or LSP server here,
// since pfn has none of those surfaces (spec.md section 6: "Persisted
// state: none").
package main

import (
	"fmt"
	"os"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "-help", "--help", "help":
		printUsage()
	case "compile":
		cmdCompile(os.Args[2:])
	case "run":
		cmdRun(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pfn compile <in> [-o <out>] [--typecheck] [--dump-ast] [--dump-types] [--verbose]")
	fmt.Fprintln(os.Stderr, "  pfn run <in> [--typecheck] [--host <interpreter>]")
	fmt.Fprintln(os.Stderr, "  pfn check <in> [--dump-types]")
}
