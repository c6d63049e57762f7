package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/funvibe/pfn/pkg/compiler"
)

// cmdRun implements `pfn run <in> [--typecheck] [--host <interpreter>]`
// (SPEC_FULL section 2.3): compile to host source, write it to a
// uuid-named temp file (avoiding collisions across concurrent `pfn run`
// invocations in the same directory, the one place this otherwise
// stateless compiler touches the filesystem transiently), then shell
// out to the host interpreter against that file and forward its exit
// code and streams — matching cmd/funxy/main.go's own os/exec use in
// resignBinary, generalized here to actually run the program rather
// than just re-sign a binary.
func cmdRun(args []string) {
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

	if f.typecheck {
		mod, _, err = compiler.CheckModule(mod)
		if err != nil {
			report(f.input, err)
			os.Exit(1)
		}
	}

	out, err := compiler.GenerateModule(mod)
	if err != nil {
		report(f.input, err)
		os.Exit(1)
	}

	tmpPath := filepath.Join(os.TempDir(), "pfn-"+uuid.NewString()+".py")
	if err := os.WriteFile(tmpPath, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing temp file: %s\n", err)
		os.Exit(1)
	}
	defer os.Remove(tmpPath)

	cmd := exec.Command(f.host, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error running %s: %s\n", f.host, err)
		os.Exit(1)
	}
}
