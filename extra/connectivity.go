package extra

import (
	"github.com/irifrance/ginix/internal/xo"
	"github.com/irifrance/ginix/uf"
	"github.com/irifrance/ginix/z"
)

// nodeState mirrors the assignment of a vertex's literal.
type nodeState int8

const (
	undecided nodeState = iota
	active
	inactive
)

const unvisited = -1

// Connectivity forces the subgraph induced by the active subset of a
// fixed vertex set to stay connected. Vertices are indices 0..n-1, each
// carrying a literal; edges are unordered pairs over those indices.
// Vertex i is Active when its literal is true, Inactive when false,
// Undecided otherwise.
type Connectivity struct {
	elits []z.Lit // external literals, as given at construction
	lits  []z.Lit // internal literals, filled in by Init

	adj [][]int

	state         []nodeState
	decisionOrder []int
	nActive       int

	// varToIdx maps a variable index to the vertex indices sharing it,
	// built once in Init and scanned linearly in Propagate/Undo: vertex
	// sets are small enough in practice that a sorted equal-range buys
	// little over a direct scan, and a scan keeps Undo trivially correct
	// without an accompanying binary-search helper.
	varToIdx map[z.Var][]int

	// DFS scratch, rebuilt from scratch on every Propagate call: this
	// propagator is non-incremental.
	rank    []int
	lowlink []int
	subtreeActive []int
	clusterID     []int
	parent        []int
	nextRank      int

	// conflictCausePos/-Lit record the vertex and literal that would
	// have forced a contradiction, for use by the subsequent CalcReason.
	// conflictCausePos == -1 means the conflict was intrinsic (the
	// induced subgraph already had two active components).
	conflictCausePos int
	conflictCauseLit z.Lit
}

// NewConnectivity builds a propagator over len(lits) vertices, with lits
// giving each vertex's external literal and edges naming pairs of vertex
// indices. Duplicate edges are tolerated; self-loops are harmless.
func NewConnectivity(lits []z.Lit, edges [][2]int) *Connectivity {
	n := len(lits)
	c := &Connectivity{
		elits:            append([]z.Lit(nil), lits...),
		adj:              make([][]int, n),
		state:            make([]nodeState, n),
		rank:             make([]int, n),
		lowlink:          make([]int, n),
		subtreeActive:    make([]int, n),
		clusterID:        make([]int, n),
		parent:           make([]int, n),
		conflictCausePos: -2,
	}
	for _, e := range edges {
		c.adj[e[0]] = append(c.adj[e[0]], e[1])
		c.adj[e[1]] = append(c.adj[e[1]], e[0])
	}
	return c
}

func (c *Connectivity) Init(s *xo.S) bool {
	c.lits = make([]z.Lit, len(c.elits))
	for i, e := range c.elits {
		c.lits[i] = s.Internalize(e)
	}

	c.varToIdx = make(map[z.Var][]int, len(c.lits))
	for i, m := range c.lits {
		v := s.Vidx(m)
		c.varToIdx[v] = append(c.varToIdx[v], i)
	}

	for i, m := range c.lits {
		switch s.Val(m) {
		case 1:
			c.state[i] = active
			c.decisionOrder = append(c.decisionOrder, i)
		case -1:
			c.state[i] = inactive
			c.decisionOrder = append(c.decisionOrder, i)
		}
	}

	watched := make(map[z.Lit]bool, 2*len(c.lits))
	for _, m := range c.lits {
		watched[m] = true
		watched[m.Not()] = true
	}
	for m := range watched {
		s.RequireExtraWatch(m, c)
	}

	propagateLits := make(map[z.Lit]bool)
	for i, st := range c.state {
		switch st {
		case active:
			propagateLits[c.lits[i]] = true
		case inactive:
			propagateLits[c.lits[i].Not()] = true
		}
	}
	for m := range propagateLits {
		if !c.Propagate(s, m) {
			return false
		}
	}
	return true
}

func (c *Connectivity) Propagate(s *xo.S, p z.Lit) bool {
	n := len(c.lits)
	v := s.Vidx(p)
	for _, i := range c.varToIdx[v] {
		val := s.Val(c.lits[i])
		var st nodeState
		if val == 1 {
			st = active
			c.nActive++
		} else if val == -1 {
			st = inactive
		} else {
			panic("extra: connectivity propagate observed an unassigned watched literal")
		}
		c.state[i] = st
		c.decisionOrder = append(c.decisionOrder, i)
	}

	if c.nActive == 0 {
		return true
	}

	for i := range c.rank {
		c.rank[i] = unvisited
	}
	for i := range c.lowlink {
		c.lowlink[i] = 0
	}
	for i := range c.subtreeActive {
		c.subtreeActive[i] = 0
	}
	for i := range c.clusterID {
		c.clusterID[i] = unvisited
	}
	for i := range c.parent {
		c.parent[i] = -1
	}
	c.nextRank = 0

	nonemptyCluster := -1
	nAllClusters := 0

	for i := 0; i < n; i++ {
		if c.state[i] != inactive && c.rank[i] == unvisited {
			c.buildTree(i, -1, i)
			if c.subtreeActive[i] >= 1 {
				if nonemptyCluster != -1 {
					c.conflictCausePos = -1
					return false
				}
				nonemptyCluster = i
			} else {
				nAllClusters++
			}
		}
	}

	if c.nActive <= 1 && nAllClusters == 0 {
		return true
	}

	if nonemptyCluster == -1 {
		return true
	}

	for v := 0; v < n; v++ {
		if c.state[v] != undecided {
			continue
		}

		if c.clusterID[v] != nonemptyCluster {
			val := s.Val(c.lits[v].Not())
			switch val {
			case 1:
				// already forced inactive
			case 0:
				s.SearchAssignExt(c.lits[v].Not(), c)
			default:
				c.conflictCausePos = v
				c.conflictCauseLit = c.lits[v]
				return false
			}
			continue
		}

		if c.nActive <= 1 {
			continue
		}
		parentSide := c.subtreeActive[nonemptyCluster] - c.subtreeActive[v]
		nNonemptySubgraph := 0
		for _, w := range c.adj[v] {
			if c.rank[v] < c.rank[w] && c.parent[w] == v {
				if c.lowlink[w] < c.rank[v] {
					parentSide += c.subtreeActive[w]
				} else if c.subtreeActive[w] > 0 {
					nNonemptySubgraph++
				}
			}
		}
		if parentSide > 0 {
			nNonemptySubgraph++
		}
		if nNonemptySubgraph >= 2 {
			val := s.Val(c.lits[v])
			switch val {
			case 1:
				// already forced active
			case 0:
				s.SearchAssignExt(c.lits[v], c)
			default:
				c.conflictCausePos = v
				c.conflictCauseLit = c.lits[v].Not()
				return false
			}
		}
	}
	return true
}

func (c *Connectivity) buildTree(v, parent, clusterID int) int {
	c.rank[v] = c.nextRank
	c.nextRank++
	c.clusterID[v] = clusterID
	c.parent[v] = parent
	lowlink := c.rank[v]
	subtreeActive := 0
	if c.state[v] == active {
		subtreeActive = 1
	}

	for _, w := range c.adj[v] {
		if w == parent || c.state[w] == inactive {
			continue
		}
		if c.rank[w] == unvisited {
			childLow := c.buildTree(w, v, clusterID)
			if childLow < lowlink {
				lowlink = childLow
			}
			subtreeActive += c.subtreeActive[w]
		} else if c.rank[w] < lowlink {
			lowlink = c.rank[w]
		}
	}

	c.subtreeActive[v] = subtreeActive
	c.lowlink[v] = lowlink
	return lowlink
}

func (c *Connectivity) CalcReason(s *xo.S, p z.Lit, dst []z.Lit) []z.Lit {
	if p == z.LitNull && c.conflictCausePos == -2 {
		panic("extra: calc_reason(0) with no recorded conflict")
	}
	if p == z.LitNull && c.conflictCausePos != -1 {
		c.decisionOrder = append(c.decisionOrder, c.conflictCausePos)
		if c.conflictCauseLit == c.lits[c.conflictCausePos] {
			c.state[c.conflictCausePos] = active
		} else {
			c.state[c.conflictCausePos] = inactive
		}
	}

	n := len(c.lits)
	u := uf.New(n)
	activated := make([]bool, n)

	for i := 0; i < n; i++ {
		if c.state[i] == active {
			u.AddActiveCount(i, 1)
		}
		if c.state[i] != inactive && (p == z.LitNull || p != c.lits[i]) {
			activated[i] = true
		}
	}
	for v := 0; v < n; v++ {
		for _, w := range c.adj[v] {
			if activated[v] && activated[w] {
				u.Merge(v, w)
			}
		}
	}
	if p != z.LitNull {
		for i := 0; i < n; i++ {
			if c.lits[i] == p.Not() {
				u.AddActiveCount(i, 1)
			}
		}
	}
	u.Commit()
	if u.NumActiveClusters() <= 1 {
		panic("extra: connectivity calc_reason found nothing to explain")
	}

	for i := len(c.decisionOrder) - 1; i >= 0; i-- {
		v := c.decisionOrder[i]
		if p != z.LitNull && s.Vidx(p) == s.Vidx(c.lits[v]) {
			panic("extra: connectivity calc_reason walked into the literal being explained")
		}

		if c.state[v] == active {
			u.AddActiveCount(v, -1)
		}
		for _, w := range c.adj[v] {
			if activated[w] {
				u.Merge(v, w)
			}
		}

		if u.NumActiveClusters() >= 2 {
			u.Commit()
			activated[v] = true
		} else {
			u.Redo()
			if c.state[v] == active {
				dst = append(dst, c.lits[v])
			} else if c.state[v] == inactive {
				dst = append(dst, c.lits[v].Not())
			}
		}
	}

	if p == z.LitNull && c.conflictCausePos != -1 {
		c.decisionOrder = c.decisionOrder[:len(c.decisionOrder)-1]
		c.state[c.conflictCausePos] = undecided
	}
	return dst
}

func (c *Connectivity) Undo(s *xo.S, p z.Lit) {
	v := s.Vidx(p)
	for _, i := range c.varToIdx[v] {
		if c.state[i] == active {
			c.nActive--
		}
		c.state[i] = undecided
		n := len(c.decisionOrder)
		c.decisionOrder = c.decisionOrder[:n-1]
	}
}
