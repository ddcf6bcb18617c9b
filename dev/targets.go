//go:build targ

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

var errOutOfOrder = errors.New("files need reordering")

// Build builds the seamrun and seamgen binaries.
func Build() error {
	fmt.Println("Building seamrun and seamgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	if err := sh.Run("go", "build", "-o", "bin/seamgen", "./seamgen"); err != nil {
		return err
	}

	return sh.Run("go", "build", "-o", "bin/seamrun", "./seamrun")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,
		Test,
		Suite,
		ReorderDecls, // linter will yell about declaration order if not correct
		Lint,
	)
}

// Generate regenerates the seam doubles.
func Generate() error {
	fmt.Println("Generating...")

	return sh.Run("go", "generate", "./...")
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")

	return sh.Run("golangci-lint", "run", "./...")
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=600s", "-tags=mutation", "-ooze.v", "./dev", "-run=TestMutation")
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := sourceFiles()
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

		if string(content) != reordered {
			if err := os.WriteFile(path, []byte(reordered), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Printf("  Reordered: %s\n", path)
			reorderedCount++
		}
	}

	fmt.Printf("Reordered %d file(s).\n", reorderedCount)

	return nil
}

// ReorderDeclsCheck reports which files need reordering, with a diff, without modifying them.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	files, err := sourceFiles()
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
		if err != nil || string(content) == reordered {
			continue
		}

		outOfOrder++

		fmt.Printf("\n%s:\n", path)

		for i, section := range sectionOrder.Sections {
			if section.Expected != i+1 {
				fmt.Printf("  %s is at #%d, should be #%d\n", section.Name, i+1, section.Expected)
			}
		}

		fmt.Printf("\n%s\n", textdiff.Unified(path+" (current)", path+" (reordered)", string(content), reordered))
	}

	if outOfOrder > 0 {
		fmt.Printf("\n%d file(s) need reordering. Run 'targ reorder-decls' to fix.\n", outOfOrder)

		return fmt.Errorf("%w: %d", errOutOfOrder, outOfOrder)
	}

	fmt.Printf("All %d files are correctly ordered.\n", len(files))

	return nil
}

// Suite runs the registered cases through seamrun.
func Suite() error {
	fmt.Println("Running the seamrun suite...")

	return sh.Run("go", "run", "./seamrun", "-v", "2")
}

// Test runs the unit tests with the race detector and coverage.
func Test() error {
	fmt.Println("Running unit tests...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=2m", "-race", "-count=1", "-coverprofile=coverage.out", "./...")
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

// hasRelevantChanges ignores the files Check itself writes.
func hasRelevantChanges(changes file.ChangeSet) bool {
	all := append(append(changes.Added, changes.Removed...), changes.Modified...)

	for _, f := range all {
		if !strings.Contains(f, "generated_") && !strings.HasSuffix(f, "coverage.out") {
			return true
		}
	}

	return false
}

func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 200)

	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return strings.Contains(string(buf[:n]), "Code generated"), nil
}

// sourceFiles lists the hand-written Go files of the module.
func sourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(".", func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %s: %w", path, err)
		}

		if entry.IsDir() {
			if path != "." && (strings.HasPrefix(entry.Name(), ".") || strings.HasPrefix(entry.Name(), "_")) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" || strings.Contains(path, "generated_") {
			return nil
		}

		generated, err := isGeneratedFile(path)
		if err != nil || generated {
			return err
		}

		files = append(files, path)

		return nil
	})

	return files, err
}
