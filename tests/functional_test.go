package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/pfn/internal/config"
)

// TestFunctional builds the pfn binary and runs every .pfn file that has
// a matching .want file through `pfn run`, comparing its combined
// stdout+stderr against the expected text. This exercises the compiler
// and the generated host source together, the way a user actually sees
// pfn behave - not just CompileSource's return value.
func TestFunctional(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("failed to resolve project root: %v", err)
	}

	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not on PATH, skipping functional tests")
	}

	binaryPath := filepath.Join(projectRoot, "pfn-test-binary")
	defer os.Remove(binaryPath)

	t.Log("building fresh pfn binary")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pfn")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}

	var testFiles []string
	err = filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, config.SourceFileExt) {
			return nil
		}
		wantFile := config.TrimSourceExt(path) + ".want"
		if _, err := os.Stat(wantFile); err == nil {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testdata: %v", err)
	}

	if len(testFiles) == 0 {
		t.Skip("no .pfn files with a matching .want found")
	}

	for _, testFile := range testFiles {
		testFile := testFile
		testName := strings.TrimSuffix(filepath.Base(testFile), config.SourceFileExt)

		t.Run(testName, func(t *testing.T) {
			absPath, err := filepath.Abs(testFile)
			if err != nil {
				t.Fatalf("failed to resolve path: %v", err)
			}

			wantBytes, err := os.ReadFile(config.TrimSourceExt(testFile) + ".want")
			if err != nil {
				t.Fatalf("failed to read .want file: %v", err)
			}
			want := strings.TrimSpace(string(wantBytes))

			cmd := exec.Command(binaryPath, "run", absPath)
			cmd.Dir = projectRoot
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			_ = cmd.Run()

			stdoutStr := strings.TrimSpace(stdout.String())
			stderrStr := strings.TrimSpace(stderr.String())

			var got string
			switch {
			case stdoutStr != "" && stderrStr != "":
				got = stdoutStr + "\n" + stderrStr
			case stdoutStr != "":
				got = stdoutStr
			default:
				got = stderrStr
			}
			got = strings.ReplaceAll(got, projectRoot+"/", "")
			got = strings.TrimSpace(strings.ReplaceAll(got, "\r\n", "\n"))
			want = strings.TrimSpace(strings.ReplaceAll(want, "\r\n", "\n"))

			if got != want {
				t.Errorf("output mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}
