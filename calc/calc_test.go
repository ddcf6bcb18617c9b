package calc_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/seam/calc"
	"pgregory.net/rapid"
)

func TestAdd_OnePlusOne(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(calc.Add(1, 1)).To(Equal(2))
}

func TestAdd_IsSum_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		// keep clear of overflow, which is out of scope
		a := rapid.IntRange(-1<<30, 1<<30).Draw(rt, "a")
		b := rapid.IntRange(-1<<30, 1<<30).Draw(rt, "b")

		if got := calc.Add(a, b); got != a+b {
			rt.Fatalf("Add(%d, %d) = %d, want %d", a, b, got, a+b)
		}
	})
}

func TestAdd_Commutes_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int().Draw(rt, "a")
		b := rapid.Int().Draw(rt, "b")

		if calc.Add(a, b) != calc.Add(b, a) {
			rt.Fatalf("Add(%d, %d) != Add(%d, %d)", a, b, b, a)
		}
	})
}

// TestDummyFunction_LinkedDependency calls the production dependency directly.
func TestDummyFunction_LinkedDependency(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(calc.DummyFunction(1, 1)).To(Equal(2))
}

func TestAddWith_NilUsesProduction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(calc.AddWith(nil, 1, 1)).To(Equal(2))
	g.Expect(calc.AddWith(calc.Production{}, 20, 22)).To(Equal(42))
}

func TestAddWith_DelegatesToDependency(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var gotA, gotB int

	dep := calc.DependencyFunc(func(a, b int) int {
		gotA, gotB = a, b

		return 99
	})

	g.Expect(calc.AddWith(dep, 3, 4)).To(Equal(99))
	g.Expect(gotA).To(Equal(3))
	g.Expect(gotB).To(Equal(4))
}

func TestAddWith_ProductionMatchesAdd_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(-1<<30, 1<<30).Draw(rt, "a")
		b := rapid.IntRange(-1<<30, 1<<30).Draw(rt, "b")

		if calc.AddWith(calc.Production{}, a, b) != calc.Add(a, b) {
			rt.Fatalf("production dependency disagrees with Add for (%d, %d)", a, b)
		}
	})
}
