// Package gen generates typed seam test doubles from Go interface declarations.
package gen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// FileSystem is what the generator needs from the disk.
type FileSystem interface {
	Glob(pattern string) ([]string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Options describes one generator invocation.
type Options struct {
	// Interface is the name of the interface to mock.
	Interface string
	// Name is the mock type name. Defaults to <Interface>Mock.
	Name string
	// SrcDir is the directory of the package declaring the interface. Defaults to ".".
	SrcDir string
	// ImportPath is the import path of that package. Empty means the mock lives in the same package.
	ImportPath string
	// PkgName is the package of the generated file.
	PkgName string
	// Out is the output file. Defaults to generated_<Name>.go.
	Out string
}

// Generator errors.
var (
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrNotInterface      = errors.New("not an interface")
	ErrUnsupported       = errors.New("unsupported interface")
	ErrNoSource          = errors.New("no Go source files")
)

// Generate returns the source of a mock for opts.Interface.
func Generate(opts Options, fileSys FileSystem) (string, error) {
	opts = opts.withDefaults()

	files, err := loadPackage(opts.SrcDir, fileSys)
	if err != nil {
		return "", err
	}

	iface, file, err := findInterface(files, opts.Interface)
	if err != nil {
		return "", err
	}

	model, err := buildModel(opts, iface, file)
	if err != nil {
		return "", err
	}

	return render(model)
}

// Run generates the mock and writes it to opts.Out, reporting progress to out.
func Run(opts Options, fileSys FileSystem, out io.Writer) error {
	opts = opts.withDefaults()

	code, err := Generate(opts, fileSys)
	if err != nil {
		return err
	}

	return writeGeneratedCode(code, opts.Out, fileSys, out)
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = o.Interface + "Mock"
	}

	if o.SrcDir == "" {
		o.SrcDir = "."
	}

	if o.Out == "" {
		o.Out = "generated_" + o.Name + ".go"
	}

	return o
}

// buildModel collects everything the templates need from the interface declaration.
func buildModel(opts Options, iface *dst.InterfaceType, file *dst.File) (mockModel, error) {
	srcPkg := file.Name.Name

	model := mockModel{
		PkgName:   opts.PkgName,
		Name:      opts.Name,
		Interface: opts.Interface,
		IfaceType: opts.Interface,
		ImplName:  lowerFirst(opts.Name) + "Impl",
	}

	if model.PkgName == "" {
		model.PkgName = srcPkg
	}

	qualifier := ""

	if opts.ImportPath != "" {
		qualifier = srcPkg
		model.IfaceType = srcPkg + "." + opts.Interface

		spec := strconv.Quote(opts.ImportPath)
		if path.Base(opts.ImportPath) != srcPkg {
			spec = srcPkg + " " + spec
		}

		model.Imports = append(model.Imports, spec)
	}

	writer := newTypeWriter(qualifier, fileImports(file))

	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			return mockModel{}, fmt.Errorf("%w: %s embeds %s", ErrUnsupported, opts.Interface, writer.stringify(field.Type))
		}

		funcType, ok := field.Type.(*dst.FuncType)
		if !ok {
			return mockModel{}, fmt.Errorf("%w: %s.%s is not a method", ErrUnsupported, opts.Interface, field.Names[0].Name)
		}

		for _, name := range field.Names {
			model.Methods = append(model.Methods, buildMethod(name.Name, funcType, writer))
		}
	}

	model.Imports = append(model.Imports, writer.imports()...)

	return model, nil
}

func buildMethod(name string, funcType *dst.FuncType, writer *typeWriter) methodModel {
	method := methodModel{Name: name}

	if funcType.Params != nil {
		for _, field := range funcType.Params.List {
			names := fieldNames(field, len(method.Params))
			for _, paramName := range names {
				param := paramModel{Name: paramName, Type: writer.stringify(field.Type)}
				param.ExpectType = param.Type

				if ellipsis, ok := field.Type.(*dst.Ellipsis); ok {
					param.ExpectType = "[]" + writer.stringify(ellipsis.Elt)
				}

				method.Params = append(method.Params, param)
			}
		}
	}

	if funcType.Results != nil {
		for _, resultType := range writer.expandFieldListTypes(funcType.Results.List) {
			method.Results = append(method.Results, resultModel{
				Name: fmt.Sprintf("r%d", len(method.Results)),
				Type: resultType,
			})
		}
	}

	return method
}

// fieldNames names a param field, inventing p<N> names for unnamed, blank, and reserved params.
func fieldNames(field *dst.Field, offset int) []string {
	if len(field.Names) == 0 {
		return []string{fmt.Sprintf("p%d", offset)}
	}

	names := make([]string, 0, len(field.Names))

	for i, ident := range field.Names {
		if ident.Name == "_" || isReserved(ident.Name) {
			names = append(names, fmt.Sprintf("p%d", offset+i))

			continue
		}

		names = append(names, ident.Name)
	}

	return names
}

// fileImports maps each import's local name to its import spec.
func fileImports(file *dst.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))

	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := path.Base(importPath)
		spec := imp.Path.Value

		if imp.Name != nil {
			name = imp.Name.Name
			spec = name + " " + spec
		}

		imports[name] = spec
	}

	return imports
}

func findInterface(files []*dst.File, name string) (*dst.InterfaceType, *dst.File, error) {
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != name {
					continue
				}

				iface, ok := typeSpec.Type.(*dst.InterfaceType)
				if !ok {
					return nil, nil, fmt.Errorf("%w: %s", ErrNotInterface, name)
				}

				return iface, file, nil
			}
		}
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// loadPackage parses the non-test Go files in dir.
func loadPackage(dir string, fileSys FileSystem) ([]*dst.File, error) {
	names, err := fileSys.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []*dst.File

	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(filepath.Base(name), "generated_") {
			continue
		}

		src, err := fileSys.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		file, err := decorator.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSource, dir)
	}

	return files, nil
}

// isReserved reports whether name would collide with an identifier the template declares.
func isReserved(name string) bool {
	switch name {
	case "c", "impl", "m", "ok", "rets", "v":
		return true
	}

	return len(name) > 1 && name[0] == 'r' && strings.Trim(name[1:], "0123456789") == ""
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
