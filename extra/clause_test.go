package extra_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	gini "github.com/irifrance/ginix"
	"github.com/irifrance/ginix/extra"
	"github.com/irifrance/ginix/z"
)

func mkClause(lits ...int) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, l := range lits {
		v := l
		sign := false
		if v < 0 {
			v = -v
			sign = true
		}
		m := z.Var(v).Pos()
		if sign {
			m = m.Neg()
		}
		out[i] = m
	}
	return out
}

func runCheck(t *testing.T, clauses [][]int, wantSat bool) {
	for _, lazy := range []bool{false, true} {
		g := gini.New()
		for _, cl := range clauses {
			lits := mkClause(cl...)
			if lazy {
				require.True(t, g.AddExtra(extra.NewLazyClause(lits)))
			} else {
				require.True(t, g.AddExtra(extra.NewEagerClause(lits)))
			}
		}
		res := g.Solve()
		if wantSat {
			require.Equal(t, 1, res)
			for _, cl := range clauses {
				sat := false
				for _, l := range mkClause(cl...) {
					if g.Value(l) {
						sat = true
						break
					}
				}
				require.True(t, sat, "clause %v not satisfied", cl)
			}
		} else {
			require.Equal(t, -1, res)
		}
	}
}

func TestClauseRunCheckSmallSat(t *testing.T) {
	runCheck(t, [][]int{
		{1, 2},
		{1, -2},
		{-1, 2},
	}, true)

	runCheck(t, [][]int{
		{4, 1},
		{-4, -1},
		{2, 3},
		{-2, -3},
		{1, 2},
		{-1, -2},
		{3, 4},
		{-3, -4},
	}, true)
}

func TestClauseRunCheckUnsatCycle(t *testing.T) {
	runCheck(t, [][]int{
		{4, 5},
		{-4, -5},
		{2, 3},
		{-2, -3},
		{1, 2},
		{-1, -2},
		{3, 4},
		{-3, -4},
		{5, 1},
		{-5, -1},
	}, false)
}

func TestClauseRunCheck3Sat(t *testing.T) {
	instance := [][]int{
		{10, -2, 9},
		{10, -9, -8},
		{-4, -2, -6},
		{-6, -5, 8},
		{-9, 2, 7},
		{5, -9, 4},
		{-6, -4, 8},
		{-10, -7, -8},
		{-2, 3, 1},
		{3, -8, -1},
		{7, -2, -5},
		{1, -7, 4},
		{3, 8, -2},
		{-1, -9, 6},
		{-4, 5, 8},
		{2, -8, -5},
		{-5, -3, 8},
		{-7, -1, -10},
		{-8, 1, 7},
		{-9, -2, -7},
		{-2, -8, -6},
		{10, -3, 2},
		{-1, 8, -3},
		{-4, -8, 7},
		{8, -4, 7},
		{2, 9, -8},
		{-1, -10, -8},
		{6, 10, -1},
		{-4, -6, 10},
		{9, 2, 1},
		{4, -3, 1},
		{-3, -6, 9},
		{10, -7, 8},
		{-10, -9, -5},
		{-2, -7, -10},
		{-8, 5, -7},
		{8, -5, -1},
		{5, 6, 9},
		{1, -3, 6},
		{-5, 8, 6},
		{-9, 5, -6},
		{6, 5, -8},
		{9, 2, -4},
		{-6, 4, 7},
	}
	runCheck(t, instance, false)
	runCheck(t, instance[:len(instance)-1], true)
}

func TestClausePropagateOnInit(t *testing.T) {
	for _, lazy := range []bool{false, true} {
		g := gini.New()
		g.Add(z.Var(1).Pos())
		g.Add(0)
		g.Add(z.Var(2).Pos())
		g.Add(0)

		if lazy {
			g.AddExtra(extra.NewLazyClause(mkClause(-1, -2)))
		} else {
			g.AddExtra(extra.NewEagerClause(mkClause(-1, -2)))
		}
		require.Equal(t, -1, g.Solve())
	}

	for _, lazy := range []bool{false, true} {
		g := gini.New()
		g.Add(z.Var(1).Pos())
		g.Add(0)
		g.Add(z.Var(2).Pos())
		g.Add(0)

		if lazy {
			g.AddExtra(extra.NewLazyClause(mkClause(-1, -2, -3)))
		} else {
			g.AddExtra(extra.NewEagerClause(mkClause(-1, -2, -3)))
		}
		require.Equal(t, 1, g.Solve())
		require.False(t, g.Value(z.Var(3).Pos()))
	}
}

func TestClauseCompareLargeSat(t *testing.T) {
	for _, seed := range []int64{37, 42, 100} {
		for _, nvar := range []int{10, 20, 30} {
			compareLargeSat(t, seed, nvar)
		}
	}
}

func compareLargeSat(t *testing.T, seed int64, nvar int) {
	rng := rand.New(rand.NewSource(seed))

	native := gini.New()
	eager := gini.New()
	lazy := gini.New()

	for {
		size := 2 + rng.Intn(4)
		vars := make(map[int]bool)
		for len(vars) < size {
			vars[1+rng.Intn(nvar)] = true
		}
		clause := make([]int, 0, size)
		for v := range vars {
			sign := 1
			if rng.Intn(2) == 0 {
				sign = -1
			}
			clause = append(clause, v*sign)
		}

		for _, l := range mkClause(clause...) {
			native.Add(l)
		}
		native.Add(0)
		resNative := native.Solve()
		require.Contains(t, []int{1, -1}, resNative)

		eager.AddExtra(extra.NewEagerClause(mkClause(clause...)))
		resEager := eager.Solve()
		require.Equal(t, resNative, resEager, "eager diverged on clause %v", clause)

		lazy.AddExtra(extra.NewLazyClause(mkClause(clause...)))
		resLazy := lazy.Solve()
		require.Equal(t, resNative, resLazy, "lazy diverged on clause %v", clause)

		if resNative == -1 {
			break
		}
	}
}
