// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/dspm/arena"
	"github.com/katalvlaran/dspm/matrix"
)

// residualTol bounds |A·x − b| for an accepted solution.
const residualTol = 10 * matrix.Eps

type check struct {
	name string
	run  func(log zerolog.Logger) error
}

var errCheck = errors.New("check failed")

// runChecks executes the fixed scenarios and cfg.trials random systems and
// returns the number of failed checks. Random systems live in an arena that
// is rewound after every trial.
func runChecks(log zerolog.Logger, cfg config) int {
	checks := []check{
		{name: "solve-3x3", run: checkThreeByThree},
		{name: "singular-zero-row", run: checkSingular},
		{name: "mul-dimension-mismatch", run: checkMulMismatch},
		{name: "identity-neutral", run: checkIdentity},
	}

	if cfg.trials > 0 {
		ar, err := arena.New(cfg.size*cfg.size + cfg.size)
		if err != nil {
			log.Error().Err(err).Msg("arena unavailable")
			return 1
		}
		defer func() {
			if cerr := ar.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("arena close")
			}
		}()
		log.Debug().Int("capacity", ar.Cap()).Msg("arena mapped")

		rng := newRand(cfg.seed)
		for t := 0; t < cfg.trials; t++ {
			checks = append(checks, check{
				name: "random",
				run: func(log zerolog.Logger) error {
					defer resetScratch(log, ar)
					a, b, err := randomSystem(ar, rng, cfg.size)
					if err != nil {
						return err
					}
					return crossCheck(log, a, b)
				},
			})
		}
	}

	failed := 0
	for i, c := range checks {
		l := log.With().Str("check", c.name).Int("index", i).Logger()
		if err := c.run(l); err != nil {
			l.Error().Err(err).Msg("check failed")
			failed++
			continue
		}
		l.Debug().Msg("ok")
	}

	return failed
}

// resetScratch releases a trial's arena storage and reports a failed reset.
func resetScratch(log zerolog.Logger, ar *arena.Arena) {
	if err := ar.Reset(); err != nil {
		log.Warn().Err(err).Msg("arena reset")
	}
}

// crossCheck solves a·x = b both ways and verifies agreement and residual.
func crossCheck(log zerolog.Logger, a, b matrix.Matrix) error {
	x, diff, err := matrix.CrossCheck(a, b)
	if err != nil {
		return err
	}
	r, err := matrix.Residual(a, x, b)
	if err != nil {
		return err
	}
	zero, err := matrix.ZerosLike(r)
	if err != nil {
		return err
	}
	worst, err := matrix.MaxAbsDiff(r, zero)
	if err != nil {
		return err
	}

	if ev := log.Debug(); ev.Enabled() {
		ev = ev.Float32("solver_diff", diff).Float32("residual", worst)
		if xt, terr := matrix.Transpose(x); terr == nil {
			ev = ev.Str("x^T", strings.TrimSpace(xt.String()))
		}
		ev.Msg("solved")
	}

	if diff > matrix.Eps {
		log.Warn().Float32("solver_diff", diff).Float32("eps", matrix.Eps).Msg("solvers disagree")
		return errCheck
	}
	if worst > residualTol*scaleOf(b) {
		log.Warn().Float32("residual", worst).Msg("residual above tolerance")
		return errCheck
	}

	return nil
}

// scaleOf returns max(1, max|b|) so the residual bound follows the data size.
func scaleOf(b matrix.Matrix) float32 {
	s := float32(1)
	for i := 0; i < b.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			v, err := b.At(i, j)
			if err != nil {
				continue
			}
			if v < 0 {
				v = -v
			}
			if v > s {
				s = v
			}
		}
	}

	return s
}

func checkThreeByThree(log zerolog.Logger) error {
	a, err := matrix.NewDenseFrom(3, 3, []float32{3, 2, 1, 2, 3, 1, 2, 1, 3})
	if err != nil {
		return err
	}
	b, err := matrix.NewDenseFrom(3, 1, []float32{5, -1, 4})
	if err != nil {
		return err
	}

	return crossCheck(log, a, b)
}

func checkSingular(_ zerolog.Logger) error {
	a, err := matrix.NewDenseFrom(3, 3, []float32{1, 2, 3, 0, 0, 0, 4, 5, 6})
	if err != nil {
		return err
	}
	b, err := matrix.NewDenseFrom(3, 1, []float32{1, 2, 3})
	if err != nil {
		return err
	}
	if _, err = matrix.Solve(a, b); !errors.Is(err, matrix.ErrSingular) {
		return errors.Join(errCheck, err)
	}
	if _, err = matrix.Roots(a, b); !errors.Is(err, matrix.ErrSingular) {
		return errors.Join(errCheck, err)
	}

	return nil
}

func checkMulMismatch(_ zerolog.Logger) error {
	a, err := matrix.NewDense(4, 4)
	if err != nil {
		return err
	}
	x, err := matrix.NewDense(3, 1)
	if err != nil {
		return err
	}
	if _, err = matrix.Mul(a, x); !errors.Is(err, matrix.ErrDimensionMismatch) {
		return errors.Join(errCheck, err)
	}

	return nil
}

func checkIdentity(_ zerolog.Logger) error {
	const n = 4
	a, err := matrix.NewDense(n, n)
	if err != nil {
		return err
	}
	a.Apply(func(i, j int, _ float32) float32 { return float32(i*n + j) })
	id, err := matrix.NewIdentity(n)
	if err != nil {
		return err
	}
	left, err := matrix.Mul(id, a)
	if err != nil {
		return err
	}
	right, err := matrix.Mul(a, id)
	if err != nil {
		return err
	}
	if !matrix.Equal(left, a) || !matrix.Equal(right, a) {
		return errCheck
	}

	return nil
}

// randomSystem carves a strictly diagonally dominant n×n matrix (hence
// non-singular and well conditioned) and a random n×1 right-hand side out of ar.
func randomSystem(ar *arena.Arena, rng *rand.Rand, n int) (*matrix.View, *matrix.View, error) {
	a, err := ar.Alloc(n, n)
	if err != nil {
		return nil, nil, err
	}
	b, err := ar.Alloc(n, 1)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := float32(rng.Float64()*2 - 1)
			if i == j {
				v += float32(n)
			}
			if err = a.Set(i, j, v); err != nil {
				return nil, nil, err
			}
		}
		if err = b.Set(i, 0, float32(rng.Float64()*2-1)); err != nil {
			return nil, nil, err
		}
	}

	return a, b, nil
}

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }
