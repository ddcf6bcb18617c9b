// Package calc holds the functions the seam examples test: a direct addition, and an addition that
// delegates to a separately supplied dependency so tests can substitute a double for it.
package calc

// Dependency is the seam between AddWith and the function it delegates to.
// Production code uses Production; tests substitute a double.
type Dependency interface {
	DummyFunction(a, b int) int
}

// DependencyFunc adapts a plain function with the dependency's signature to a Dependency.
type DependencyFunc func(a, b int) int

// DummyFunction calls f(a, b).
func (f DependencyFunc) DummyFunction(a, b int) int {
	return f(a, b)
}

// Production is the production Dependency.
type Production struct{}

// DummyFunction delegates to the package-level DummyFunction.
func (Production) DummyFunction(a, b int) int {
	return DummyFunction(a, b)
}

// Add returns a + b. Overflow wraps.
func Add(a, b int) int {
	return a + b
}

// AddWith returns the sum of a and b as computed by dep.
// A nil dep means Production.
func AddWith(dep Dependency, a, b int) int {
	if dep == nil {
		dep = Production{}
	}

	return dep.DummyFunction(a, b)
}

// DummyFunction is the production dependency. It is assumed to add its arguments; nothing upstream
// confirms that contract, so callers that care should test through AddWith with a double.
func DummyFunction(a, b int) int {
	return Add(a, b)
}
