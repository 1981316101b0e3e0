//go:build targ

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,
		FixImports,
		Modernize,
		CheckCoverage,
		ReorderDecls, // linter will yell about declaration order if not correct
		Lint,
	)
}

// CheckCoverage checks that function coverage meets the minimum threshold.
func CheckCoverage() error {
	fmt.Println("Checking coverage...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	out, err := output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return err
	}

	percentPattern := regexp.MustCompile(`\d+\.\d`)
	linesAndCoverage := []lineAndCoverage{}

	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, "total:") || strings.TrimSpace(line) == "" {
			continue
		}

		percent, err := strconv.ParseFloat(percentPattern.FindString(line), 64)
		if err != nil {
			return err
		}

		linesAndCoverage = append(linesAndCoverage, lineAndCoverage{line, percent})
	}

	if len(linesAndCoverage) == 0 {
		return errNoCoverage
	}

	slices.SortStableFunc(linesAndCoverage, func(a, b lineAndCoverage) int {
		switch {
		case a.coverage < b.coverage:
			return -1
		case a.coverage > b.coverage:
			return 1
		default:
			return 0
		}
	})

	for _, lc := range linesAndCoverage {
		fmt.Println(lc.line)
	}

	lowest := linesAndCoverage[0]
	if lowest.coverage < minimumFunctionCoverage {
		return fmt.Errorf("function coverage was less than the limit of %.1f:\n  %s",
			minimumFunctionCoverage, lowest.line)
	}

	return nil
}

// CheckForFail runs all checks on the code for determining whether any fail.
func CheckForFail() error {
	fmt.Println("Checking...")

	// fastest to slowest
	return targ.Deps(
		ReorderDeclsCheck,
		LintForFail,
		TestForFail,
		CheckCoverage,
	)
}

// Clean cleans up the dev env.
func Clean() {
	fmt.Println("Cleaning...")
	os.Remove("coverage.out")
}

// FixImports fixes all imports in the codebase.
func FixImports() error {
	fmt.Println("Fixing imports...")
	return sh.Run("goimports", "-w", ".")
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run")
}

// LintForFail lints the codebase purely to find out whether anything fails.
func LintForFail() error {
	fmt.Println("Linting to check for overall pass/fail...")

	return sh.Run(
		"golangci-lint", "run",
		"--fix=false",
		"--max-issues-per-linter=1",
		"--max-same-issues=1",
		"--allow-parallel-runners",
	)
}

// Modernize updates the codebase to use modern Go patterns.
func Modernize() error {
	fmt.Println("Modernizing codebase...")

	return sh.Run("go", "run", "golang.org/x/tools/go/analysis/passes/modernize/cmd/modernize@latest",
		"-fix", "./...")
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=6000s",
		"-tags=mutation",
		"-ooze.v",
		"./dev/...",
		"-run=TestMutation",
	)
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := sourceFiles(".")
	if err != nil {
		return err
	}

	reorderedCount := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			continue
		}

		if string(content) == reordered {
			continue
		}

		if err := os.WriteFile(path, []byte(reordered), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("  Reordered: %s\n", path)
		reorderedCount++
	}

	fmt.Printf("Reordered %d file(s).\n", reorderedCount)

	return nil
}

// ReorderDeclsCheck reports which files need reordering without modifying them.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	files, err := sourceFiles(".")
	if err != nil {
		return err
	}

	outOfOrder := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		sectionOrder, err := reorder.AnalyzeSectionOrder(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to analyze %s: %v\n", path, err)

			continue
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			continue
		}

		if string(content) == reordered {
			continue
		}

		outOfOrder++

		fmt.Printf("\n%s:\n  Current order:\n", path)

		for i, section := range sectionOrder.Sections {
			note := ""
			if section.Expected != i+1 {
				note = fmt.Sprintf(" <- should be #%d", section.Expected)
			}

			fmt.Printf("    %d. %-24s%s\n", i+1, section.Name, note)
		}

		if diff := textdiff.Unified(path+" (current)", path+" (reordered)", string(content), reordered); diff != "" {
			fmt.Printf("\n%s\n", diff)
		}
	}

	if outOfOrder > 0 {
		return fmt.Errorf("%d of %d file(s) need reordering, run 'targ reorder-decls' to fix", outOfOrder, len(files))
	}

	fmt.Printf("All files are correctly ordered (%d files processed).\n", len(files))

	return nil
}

// Test runs the unit tests with race detection and coverage.
func Test() error {
	fmt.Println("Running unit tests...")

	// -count=1 disables caching so coverage is regenerated
	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"-coverprofile=coverage.out",
		"-coverpkg=./...",
		"./...",
	)
}

// TestForFail runs the unit tests purely to find out whether any fail.
func TestForFail() error {
	fmt.Println("Running unit tests for overall pass/fail...")
	return sh.Run("go", "test", "-timeout=30s", "./...", "-failfast")
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

// Watch re-runs Check whenever files change.
func Watch(ctx context.Context) error {
	fmt.Println("Watching...")

	return file.Watch(ctx, []string{"**/*.go", "**/*.toml"}, file.WatchOptions{}, func(changes file.ChangeSet) error {
		if !hasRelevantChanges(changes) {
			return nil
		}

		fmt.Println("Change detected...")

		targ.ResetDeps()

		if err := Check(); err != nil {
			fmt.Println("continuing to watch after check failure (see errors above)")
		} else {
			fmt.Println("continuing to watch after all checks passed!")
		}

		return nil
	})
}

const minimumFunctionCoverage = 80.0

// unexported variables.
var (
	errNoCoverage = errors.New("no coverage data found")
)

type lineAndCoverage struct {
	line     string
	coverage float64
}

// hasRelevantChanges ignores the artifacts Check itself writes.
func hasRelevantChanges(changes file.ChangeSet) bool {
	all := slices.Concat(changes.Added, changes.Removed, changes.Modified)

	return slices.ContainsFunc(all, func(path string) bool {
		return !strings.HasSuffix(path, "coverage.out")
	})
}

// output runs a command and captures stdout only (stderr goes to os.Stderr).
func output(command string, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = buf
	cmd.Stderr = os.Stderr
	err := cmd.Run()

	return strings.TrimSuffix(buf.String(), "\n"), err
}

// sourceFiles lists the Go files under dir, skipping directories the go tool
// ignores (hidden or underscore-prefixed).
func sourceFiles(dir string) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %s: %w", path, err)
		}

		if entry.IsDir() && path != dir && (strings.HasPrefix(entry.Name(), ".") || strings.HasPrefix(entry.Name(), "_")) {
			return filepath.SkipDir
		}

		if filepath.Ext(path) == ".go" {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
