// Package calctest provides test doubles for calc.Dependency.
//
// DependencyMock is generated by seamgen and runs on the seam controller. TestifyDependency is the
// same seam filled with a testify mock, for suites that already use testify.
package calctest

import (
	"github.com/stretchr/testify/mock"
	"github.com/toejough/seam/calc"
)

//go:generate go run ../../seamgen Dependency --src .. --import github.com/toejough/seam/calc

// TestifyDependency is a calc.Dependency backed by testify's mock.Mock.
type TestifyDependency struct {
	mock.Mock
}

// Compile-time interface check.
var _ calc.Dependency = (*TestifyDependency)(nil)

// DummyFunction records the call and returns the int configured with On(...).Return(...).
func (d *TestifyDependency) DummyFunction(a, b int) int {
	args := d.Called(a, b)

	return args.Int(0)
}
