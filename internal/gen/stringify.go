package gen

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// typeWriter renders dst type expressions as Go source for a file in another package.
// Identifiers declared in the source package get qualifier; package selectors are recorded so the
// generated file can import them.
type typeWriter struct {
	qualifier   string
	fileImports map[string]string // local name -> quoted import spec
	used        map[string]string
}

func newTypeWriter(qualifier string, fileImports map[string]string) *typeWriter {
	return &typeWriter{
		qualifier:   qualifier,
		fileImports: fileImports,
		used:        make(map[string]string),
	}
}

// expandFieldListTypes expands a field list into individual type strings, once per name.
func (w *typeWriter) expandFieldListTypes(fields []*dst.Field) []string {
	var parts []string

	for _, f := range fields {
		typeStr := w.stringify(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// imports returns the import specs needed by the types rendered so far.
func (w *typeWriter) imports() []string {
	specs := make([]string, 0, len(w.used))
	for _, spec := range w.used {
		specs = append(specs, spec)
	}

	return specs
}

//nolint:cyclop // Type-switch dispatcher handling all DST expression types; complexity is inherent
func (w *typeWriter) stringify(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		if w.qualifier == "" || isPredeclared(typedExpr.Name) {
			return typedExpr.Name
		}

		return w.qualifier + "." + typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		if pkg, ok := typedExpr.X.(*dst.Ident); ok {
			if spec, found := w.fileImports[pkg.Name]; found {
				w.used[pkg.Name] = spec
			}

			return pkg.Name + "." + typedExpr.Sel.Name
		}

		return w.stringify(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + w.stringify(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + w.stringify(typedExpr.Len) + "]" + w.stringify(typedExpr.Elt)
		}

		return "[]" + w.stringify(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + w.stringify(typedExpr.Key) + "]" + w.stringify(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + w.stringify(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + w.stringify(typedExpr.Value)
		default:
			return "chan " + w.stringify(typedExpr.Value)
		}
	case *dst.FuncType:
		return "func" + w.signature(typedExpr)
	case *dst.InterfaceType:
		if typedExpr.Methods == nil || len(typedExpr.Methods.List) == 0 {
			return "interface{}"
		}

		return fmt.Sprintf("interface{ /* %d methods */ }", len(typedExpr.Methods.List))
	case *dst.Ellipsis:
		return "..." + w.stringify(typedExpr.Elt)
	case *dst.ParenExpr:
		return "(" + w.stringify(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// signature renders the params and results of funcType, without the func keyword.
func (w *typeWriter) signature(funcType *dst.FuncType) string {
	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(w.expandFieldListTypes(funcType.Params.List), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	resultParts := w.expandFieldListTypes(funcType.Results.List)
	if len(resultParts) == 1 {
		return buf.String() + " " + resultParts[0]
	}

	return buf.String() + " (" + strings.Join(resultParts, ", ") + ")"
}

func isPredeclared(name string) bool {
	switch name {
	case "any", "bool", "byte", "comparable", "complex64", "complex128", "error",
		"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
		return true
	default:
		return false
	}
}
