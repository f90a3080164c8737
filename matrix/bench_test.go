// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dspm/matrix"
)

var (
	sinkDense *matrix.Dense
	sinkErr   error
)

func benchSystem(b *testing.B, n int) (*matrix.Dense, *matrix.Dense) {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	a, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatal(err)
	}
	a.Apply(func(i, j int, _ float32) float32 {
		v := float32(rng.Float64()*2 - 1)
		if i == j {
			v += float32(n)
		}
		return v
	})
	rhs, err := matrix.NewDense(n, 1)
	if err != nil {
		b.Fatal(err)
	}
	rhs.Apply(func(_, _ int, _ float32) float32 { return float32(rng.Float64()) })

	return a, rhs
}

func BenchmarkMul(b *testing.B) {
	for _, n := range []int{16, 64, 128} {
		a, _ := benchSystem(b, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkDense, sinkErr = matrix.Mul(a, a)
			}
		})
		b.Run(fmt.Sprintf("n=%d/fallback", n), func(b *testing.B) {
			h := hide{a}
			for i := 0; i < b.N; i++ {
				sinkDense, sinkErr = matrix.Mul(h, a)
			}
		})
	}
}

func BenchmarkSolvers(b *testing.B) {
	for _, n := range []int{8, 32, 128} {
		a, rhs := benchSystem(b, n)
		b.Run(fmt.Sprintf("Solve/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkDense, sinkErr = matrix.Solve(a, rhs)
			}
		})
		b.Run(fmt.Sprintf("Roots/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkDense, sinkErr = matrix.Roots(a, rhs)
			}
		})
	}
}

func BenchmarkAddInPlace(b *testing.B) {
	a, _ := benchSystem(b, 256)
	c := a.Clone()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkErr = matrix.AddInPlace(c, a)
	}
}
