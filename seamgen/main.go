// seamgen generates seam test doubles for Go interfaces.
//
// Put a `//go:generate go run github.com/toejough/seam/seamgen <Interface>` comment in the package
// that should hold the double. By default the double is named <Interface>Mock, the interface is
// looked up in the current directory, and the result goes to generated_<Interface>Mock.go.
// Use --src and --import to mock an interface declared in another package.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/toejough/seam/internal/gen"
)

type options struct {
	Name   string `short:"n" long:"name"   description:"name of the generated mock type (default <Interface>Mock)"`
	Src    string `short:"s" long:"src"    description:"directory of the package declaring the interface" default:"."`
	Import string `short:"i" long:"import" description:"import path of that package, when it is not the output package"`
	Pkg    string `short:"p" long:"pkg"    description:"package of the generated file (default $GOPACKAGE)"`
	Out    string `short:"o" long:"out"    description:"output file (default generated_<Name>.go)"`

	Args struct {
		Interface string `positional-arg-name:"interface" description:"interface to mock"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, &realFileSystem{}, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, fileSys gen.FileSystem, stdout, stderr io.Writer) int {
	var opts options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	_, err := parser.ParseArgs(args)

	var flagErr *flags.Error
	if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
		_, _ = fmt.Fprint(stdout, flagErr.Message)

		return 0
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2 //nolint:mnd
	}

	pkg := opts.Pkg
	if pkg == "" {
		pkg = getenv("GOPACKAGE")
	}

	err = gen.Run(gen.Options{
		Interface:  opts.Args.Interface,
		Name:       opts.Name,
		SrcDir:     opts.Src,
		ImportPath: opts.Import,
		PkgName:    pkg,
		Out:        opts.Out,
	}, fileSys, stdout)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

// realFileSystem implements gen.FileSystem using the os package.
type realFileSystem struct{}

// Glob returns the names of all files matching pattern.
func (fs *realFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed for pattern %s: %w", pattern, err)
	}

	return matches, nil
}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
