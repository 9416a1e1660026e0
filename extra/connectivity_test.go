package extra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	gini "github.com/irifrance/ginix"
	"github.com/irifrance/ginix/extra"
	"github.com/irifrance/ginix/z"
)

// countSatAssignments enumerates every satisfying assignment of vars by
// repeatedly solving and then blocking the assignment just found, until
// the solver reports unsat.
func countSatAssignments(g *gini.Gini, vars []z.Var) int {
	cnt := 0
	for {
		if g.Solve() != 1 {
			return cnt
		}
		cnt++
		for _, v := range vars {
			if g.Value(v.Pos()) {
				g.Add(v.Neg())
			} else {
				g.Add(v.Pos())
			}
		}
		g.Add(0)
	}
}

func litsFor(n int) []z.Lit {
	lits := make([]z.Lit, n)
	for i := 0; i < n; i++ {
		lits[i] = z.Var(i + 1).Pos()
	}
	return lits
}

func varsFor(n int) []z.Var {
	vars := make([]z.Var, n)
	for i := 0; i < n; i++ {
		vars[i] = z.Var(i + 1)
	}
	return vars
}

func countConnectedSubgraphsBySAT(n int, edges [][2]int) int {
	g := gini.New()
	g.AddExtra(extra.NewConnectivity(litsFor(n), edges))
	return countSatAssignments(g, varsFor(n))
}

func countConnectedSubgraphsNaive(n int, edges [][2]int) int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}

	var visit func(p, mask int, visited []bool)
	visit = func(p, mask int, visited []bool) {
		if visited[p] || (mask>>p)&1 == 0 {
			return
		}
		visited[p] = true
		for _, q := range adj[p] {
			visit(q, mask, visited)
		}
	}

	ret := 0
	for mask := 0; mask < (1 << n); mask++ {
		visited := make([]bool, n)
		nComponents := 0
		for i := 0; i < n; i++ {
			if (mask>>i)&1 != 0 && !visited[i] {
				nComponents++
				visit(i, mask, visited)
			}
		}
		if nComponents <= 1 {
			ret++
		}
	}
	return ret
}

func pathEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

func cycleEdges(n int) [][2]int {
	edges := [][2]int{{0, n - 1}}
	edges = append(edges, pathEdges(n)...)
	return edges
}

func TestConnectivityPathCount(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		want := n*(n+1)/2 + 1
		got := countConnectedSubgraphsBySAT(n, pathEdges(n))
		require.Equal(t, want, got, "path of length %d", n)
	}
}

func TestConnectivityCycleCount(t *testing.T) {
	for _, n := range []int{3, 4, 5, 20} {
		want := n*(n-1) + 2
		got := countConnectedSubgraphsBySAT(n, cycleEdges(n))
		require.Equal(t, want, got, "cycle of length %d", n)
	}
}

func TestConnectivityCycleDegenerateSizes(t *testing.T) {
	require.Equal(t, 2, countConnectedSubgraphsBySAT(1, cycleEdges(1)))
	require.Equal(t, 4, countConnectedSubgraphsBySAT(2, cycleEdges(2)))
}

func TestConnectivityAgainstNaiveEnumeration(t *testing.T) {
	n := 9
	edges := [][2]int{
		{0, 1}, {1, 2}, {3, 4}, {4, 5}, {6, 7}, {7, 8},
		{0, 3}, {1, 4}, {2, 5}, {3, 6}, {4, 7}, {5, 8},
	}
	require.Equal(t, countConnectedSubgraphsNaive(n, edges), countConnectedSubgraphsBySAT(n, edges))
}

func TestConnectivityPropagatesOnInit(t *testing.T) {
	{
		g := gini.New()
		g.Add(z.Var(1).Pos())
		g.Add(0)
		g.Add(z.Var(3).Pos())
		g.Add(0)

		g.AddExtra(extra.NewConnectivity(litsFor(3), [][2]int{{0, 1}, {1, 2}}))

		require.Equal(t, 1, g.Solve())
		require.True(t, g.Value(z.Var(2).Pos()))
	}

	{
		g := gini.New()
		g.Add(z.Var(1).Pos())
		g.Add(0)
		g.Add(z.Var(2).Neg())
		g.Add(0)
		g.Add(z.Var(3).Pos())
		g.Add(0)

		g.AddExtra(extra.NewConnectivity(litsFor(3), [][2]int{{0, 1}, {1, 2}}))

		require.Equal(t, -1, g.Solve())
	}
}

func TestConnectivityArticulationForcing(t *testing.T) {
	g := gini.New()
	g.Add(z.Var(1).Pos())
	g.Add(0)
	g.Add(z.Var(3).Pos())
	g.Add(0)
	g.AddExtra(extra.NewConnectivity(litsFor(3), pathEdges(3)))
	require.Equal(t, 1, g.Solve())
	require.True(t, g.Value(z.Var(2).Pos()), "middle vertex of a 3-path must be active to connect the two forced endpoints")
}

func TestConnectivityForcedDisconnectionIsUnsat(t *testing.T) {
	g := gini.New()
	g.Add(z.Var(1).Pos())
	g.Add(0)
	g.Add(z.Var(2).Neg())
	g.Add(0)
	g.Add(z.Var(3).Pos())
	g.Add(0)
	g.AddExtra(extra.NewConnectivity(litsFor(3), pathEdges(3)))
	require.Equal(t, -1, g.Solve())
}
