package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

type mockModel struct {
	PkgName   string
	Name      string
	Interface string
	IfaceType string
	ImplName  string
	Imports   []string
	Methods   []methodModel
}

type methodModel struct {
	Name    string
	Params  []paramModel
	Results []resultModel
}

// ArgNames is the comma-separated param names, for passing to the controller.
func (m methodModel) ArgNames() string {
	names := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		names = append(names, p.Name)
	}

	return strings.Join(names, ", ")
}

// ExpectParams declares the params of the typed Expect builder.
func (m methodModel) ExpectParams() string {
	return m.declare(func(p paramModel) string { return p.ExpectType })
}

// MatchParams declares the params of the Match builder, which accepts values or matchers.
func (m methodModel) MatchParams() string {
	return m.declare(func(paramModel) string { return "any" })
}

// SignatureParams declares the params as the interface does.
func (m methodModel) SignatureParams() string {
	return m.declare(func(p paramModel) string { return p.Type })
}

// ResultList renders the result types as they appear in a signature.
func (m methodModel) ResultList() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return " " + m.Results[0].Type
	default:
		types := make([]string, 0, len(m.Results))
		for _, r := range m.Results {
			types = append(types, r.Type)
		}

		return " (" + strings.Join(types, ", ") + ")"
	}
}

// ReturnParams declares the params of the typed Return builder.
func (m methodModel) ReturnParams() string {
	parts := make([]string, 0, len(m.Results))
	for _, r := range m.Results {
		parts = append(parts, r.Name+" "+r.Type)
	}

	return strings.Join(parts, ", ")
}

// ReturnNames is the comma-separated result names.
func (m methodModel) ReturnNames() string {
	names := make([]string, 0, len(m.Results))
	for _, r := range m.Results {
		names = append(names, r.Name)
	}

	return strings.Join(names, ", ")
}

func (m methodModel) declare(typeOf func(paramModel) string) string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		parts = append(parts, p.Name+" "+typeOf(p))
	}

	return strings.Join(parts, ", ")
}

type paramModel struct {
	Name       string
	Type       string
	ExpectType string
}

type resultModel struct {
	Name string
	Type string
}

// render executes the mock template and gofmts the result.
func render(model mockModel) (string, error) {
	var buf bytes.Buffer

	err := mockTmpl.Execute(&buf, model)
	if err != nil {
		return "", fmt.Errorf("failed to execute template for %s: %w", model.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format generated code for %s: %w", model.Name, err)
	}

	return string(formatted), nil
}

//nolint:gochecknoglobals // Templates are hardcoded constants, so parsing cannot fail at runtime
var mockTmpl = template.Must(template.New("mock").Parse(`// Code generated by seamgen. DO NOT EDIT.

package {{.PkgName}}

import (
	"github.com/toejough/seam"
{{- range .Imports}}
	{{.}}
{{- end}}
)

// {{.Name}} is the mock for {{.IfaceType}}.
type {{.Name}} struct {
	// Mock is the {{.IfaceType}} to hand to the code under test.
	Mock   {{.IfaceType}}
	Method *{{.Name}}Methods

	ctrl *seam.Controller
}

// {{.Name}}Methods holds the expectation builders, one per method of {{.IfaceType}}.
type {{.Name}}Methods struct {
{{- range .Methods}}
	{{.Name}} *{{$.Name}}{{.Name}}Method
{{- end}}
}
{{range .Methods}}
// {{$.Name}}{{.Name}}Call is an expectation on {{.Name}}.
type {{$.Name}}{{.Name}}Call struct {
	*seam.Expectation
}

// {{$.Name}}{{.Name}}Method registers expectations for {{.Name}}.
type {{$.Name}}{{.Name}}Method struct {
	ctrl *seam.Controller
}
{{end}}
// Mock{{.Interface}} creates a new mock for {{.IfaceType}} reporting to t.
func Mock{{.Interface}}(t seam.TestReporter, opts ...seam.Option) *{{.Name}} {
	ctrl := seam.NewController(t, opts...)

	return &{{.Name}}{
		Mock: {{.ImplName}}{ctrl: ctrl},
		Method: &{{.Name}}Methods{
{{- range .Methods}}
			{{.Name}}: &{{$.Name}}{{.Name}}Method{ctrl: ctrl},
{{- end}}
		},
		ctrl: ctrl,
	}
}

// NiceMock{{.Interface}} creates a mock that only warns about calls nobody expected.
func NiceMock{{.Interface}}(t seam.TestReporter) *{{.Name}} {
	return Mock{{.Interface}}(t, seam.Nice())
}

// Controller returns the controller behind the mock.
func (m *{{.Name}}) Controller() *seam.Controller {
	return m.ctrl
}

// Verify checks that every expectation got the calls it wanted.
func (m *{{.Name}}) Verify() bool {
	return m.ctrl.Verify()
}
{{range .Methods}}
// AnyTimes allows zero or more calls.
func (c *{{$.Name}}{{.Name}}Call) AnyTimes() *{{$.Name}}{{.Name}}Call {
	c.Expectation.AnyTimes()
	return c
}

// MinTimes requires at least n calls.
func (c *{{$.Name}}{{.Name}}Call) MinTimes(n int) *{{$.Name}}{{.Name}}Call {
	c.Expectation.MinTimes(n)
	return c
}

// Once requires exactly one call.
func (c *{{$.Name}}{{.Name}}Call) Once() *{{$.Name}}{{.Name}}Call {
	c.Expectation.Once()
	return c
}

// Panic makes the call panic with value.
func (c *{{$.Name}}{{.Name}}Call) Panic(value any) *{{$.Name}}{{.Name}}Call {
	c.Expectation.Panic(value)
	return c
}

// Return sets the values the call returns.
func (c *{{$.Name}}{{.Name}}Call) Return({{.ReturnParams}}) *{{$.Name}}{{.Name}}Call {
	c.Expectation.Return({{.ReturnNames}})
	return c
}

// Times requires exactly n calls.
func (c *{{$.Name}}{{.Name}}Call) Times(n int) *{{$.Name}}{{.Name}}Call {
	c.Expectation.Times(n)
	return c
}

// Expect registers a call to {{.Name}} with exactly these args.
func (m *{{$.Name}}{{.Name}}Method) Expect({{.ExpectParams}}) *{{$.Name}}{{.Name}}Call {
	return &{{$.Name}}{{.Name}}Call{Expectation: m.ctrl.Expect("{{.Name}}"{{if .Params}}, {{.ArgNames}}{{end}})}
}

// Match registers a call to {{.Name}} whose args satisfy the given values or matchers.
func (m *{{$.Name}}{{.Name}}Method) Match({{.MatchParams}}) *{{$.Name}}{{.Name}}Call {
	return &{{$.Name}}{{.Name}}Call{Expectation: m.ctrl.Expect("{{.Name}}"{{if .Params}}, {{.ArgNames}}{{end}})}
}
{{end}}
type {{.ImplName}} struct {
	ctrl *seam.Controller
}
{{range .Methods}}
func (impl {{$.ImplName}}) {{.Name}}({{.SignatureParams}}){{.ResultList}} {
	{{if .Results}}rets := {{end}}impl.ctrl.Invoke("{{.Name}}"{{if .Params}}, {{.ArgNames}}{{end}})
{{- range $index, $result := .Results}}

	var {{$result.Name}} {{$result.Type}}
	if len(rets) > {{$index}} {
		if v, ok := rets[{{$index}}].({{$result.Type}}); ok {
			{{$result.Name}} = v
		}
	}
{{- end}}
{{- if .Results}}

	return {{.ReturnNames}}
{{- end}}
}
{{end}}`))
