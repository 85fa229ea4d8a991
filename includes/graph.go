// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package includes

import (
	"fmt"
	"strings"
)

// Node is a file in the include graph.
type Node struct {
	Path Path

	// Pragma is true if the file declares `pragma custom_templates;`.
	Pragma bool
}

// Graph is an include graph to check custom templates usage.
//
// Edges are recorded by the path of their source, not by node index,
// so an edge from a file may be added before the file's node.
// Nodes are never removed.
type Graph struct {
	nodes []Node

	// path -> indices of nodes the path has edges to.
	edges map[Path][]int

	// indices of nodes that use custom templates.
	origins []int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[Path][]int),
	}
}

// AddNode adds a node for p and returns its index.
// It must be called at most once for each file.
// usesCustomGates marks the node as an origin of traversal.
func (g *Graph) AddNode(p Path, pragma, usesCustomGates bool) int {
	g.nodes = append(g.nodes, Node{Path: p, Pragma: pragma})
	i := len(g.nodes) - 1
	if usesCustomGates {
		g.origins = append(g.origins, i)
	}
	return i
}

// AddEdge adds an edge from the file at from to the node added last.
// It panics if no node has been added.
func (g *Graph) AddEdge(from string) {
	if len(g.nodes) == 0 {
		panic("includes: AddEdge called before AddNode")
	}
	p := Normalize(from)
	g.edges[p] = append(g.edges[p], len(g.nodes)-1)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns nodes in the order added.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Successors returns nodes that p has edges to, in the order added.
func (g *Graph) Successors(p Path) []Node {
	var nodes []Node
	for _, i := range g.edges[p] {
		nodes = append(nodes, g.node(i))
	}
	return nodes
}

func (g *Graph) node(i int) Node {
	if i < 0 || i >= len(g.nodes) {
		panic(fmt.Sprintf("includes: node index %d out of range [0,%d)", i, len(g.nodes)))
	}
	return g.nodes[i]
}

type edge struct {
	from, to int
}

// frame is a traversal frame for a node on the current chain.
type frame struct {
	node int
	// next edge index of the node to visit.
	next int
}

// ProblematicPaths returns chains from each node using custom templates
// to each reachable node without the pragma.
//
// A chain is reported at every node without the pragma, and traversal
// continues past it, so a chain may be a prefix of another chain.
// An edge is used at most once in a chain, but a node may appear again
// via another edge, so cyclic graphs terminate and diamonds report
// every chain.
func (g *Graph) ProblematicPaths() []Chain {
	var chains []Chain
	var (
		chain     Chain
		stack     []frame
		traversed = make(map[edge]bool)
	)
	enter := func(i int) {
		n := g.node(i)
		chain = append(chain, n)
		stack = append(stack, frame{node: i})
		if !n.Pragma {
			chains = append(chains, append(Chain(nil), chain...))
		}
	}
	for _, origin := range g.origins {
		enter(origin)
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			succ := g.edges[g.nodes[f.node].Path]
			if f.next >= len(succ) {
				n := f.node
				stack = stack[:len(stack)-1]
				chain = chain[:len(chain)-1]
				if len(stack) > 0 {
					delete(traversed, edge{from: stack[len(stack)-1].node, to: n})
				}
				continue
			}
			e := edge{from: f.node, to: succ[f.next]}
			f.next++
			if traversed[e] {
				continue
			}
			traversed[e] = true
			enter(e.to)
		}
	}
	return chains
}

// Chain is a chain of nodes in the include graph.
type Chain []Node

// Paths returns paths of the nodes in the chain.
func (c Chain) Paths() []Path {
	paths := make([]Path, 0, len(c))
	for _, n := range c {
		paths = append(paths, n.Path)
	}
	return paths
}

// String returns the base names of the files joined by " -> ".
// It panics if the chain is empty.
func (c Chain) String() string {
	if len(c) == 0 {
		panic("includes: empty chain")
	}
	names := make([]string, 0, len(c))
	for _, n := range c {
		names = append(names, n.Path.Base())
	}
	return strings.Join(names, " -> ")
}
