// Package dag provides the product-structure graph of a document.
// It supports cycle detection over assembly references and groups shape
// definitions into levels, parts before the assemblies that use them.
package dag

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// Node is one top-level shape definition.
type Node struct {
	// ID is the label entry
	ID    string
	Label *xcaf.Label
}

// Graph is the product structure: an edge runs from a part to every
// assembly using it.
type Graph struct {
	nodes map[string]*Node
	users map[string][]string // part -> assemblies
	parts map[string][]string // assembly -> parts
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		users: make(map[string][]string),
		parts: make(map[string][]string),
	}
}

// FromDocument builds the graph of every top-level shape of doc.
func FromDocument(doc *xcaf.Document) *Graph {
	g := NewGraph()
	shapes := doc.Shapes()
	for _, l := range shapes {
		g.AddNode(l)
	}
	for _, l := range shapes {
		for _, c := range l.Components() {
			ref, ok := c.ReferredShape()
			if !ok {
				continue
			}
			// self references are rejected by the document
			_ = g.AddEdge(ref.Entry(), l.Entry())
		}
	}
	return g
}

// AddNode adds a shape definition.
func (g *Graph) AddNode(l *xcaf.Label) {
	id := l.Entry()
	if _, exists := g.nodes[id]; exists {
		g.nodes[id].Label = l
		return
	}
	g.nodes[id] = &Node{ID: id, Label: l}
	g.users[id] = []string{}
	g.parts[id] = []string{}
}

// AddEdge records that the assembly uses the part.
func (g *Graph) AddEdge(partID, assemblyID string) error {
	if _, exists := g.nodes[partID]; !exists {
		return fmt.Errorf("part %q does not exist", partID)
	}
	if _, exists := g.nodes[assemblyID]; !exists {
		return fmt.Errorf("assembly %q does not exist", assemblyID)
	}
	if partID == assemblyID {
		return fmt.Errorf("self-loop detected: %s", partID)
	}

	if !contains(g.users[partID], assemblyID) {
		g.users[partID] = append(g.users[partID], assemblyID)
	}
	if !contains(g.parts[assemblyID], partID) {
		g.parts[assemblyID] = append(g.parts[assemblyID], partID)
	}
	return nil
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// Parts returns the definitions an assembly uses directly.
func (g *Graph) Parts(id string) []string {
	return g.parts[id]
}

// Users returns the assemblies using a definition directly.
func (g *Graph) Users(id string) []string {
	return g.users[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, users := range g.users {
		count += len(users)
	}
	return count
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasCycle returns true if the graph contains a cycle, along with the cycle path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, next := range g.users[id] {
			if !visited[next] {
				path[next] = id
				if dfs(next) {
					return true
				}
			} else if recStack[next] {
				cyclePath = []string{next}
				for curr := id; curr != next; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{next}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range g.sortedIDs() {
		if !visited[id] {
			if dfs(id) {
				return true, cyclePath
			}
		}
	}
	return false, nil
}

// Cyclic returns the IDs of every node lying on a cycle.
func (g *Graph) Cyclic() map[string]bool {
	out := make(map[string]bool)
	for id := range g.nodes {
		if contains(g.Upstream(id), id) {
			out[id] = true
		}
	}
	return out
}

// Levels returns definitions grouped by level. Level 0 holds the parts
// using nothing; an assembly sits one level above its deepest part.
func (g *Graph) Levels() ([][]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	assigned := make(map[string]int)
	var levelOf func(id string) int
	levelOf = func(id string) int {
		if level, ok := assigned[id]; ok {
			return level
		}
		level := 0
		for _, part := range g.parts[id] {
			level = max(level, levelOf(part)+1)
		}
		assigned[id] = level
		return level
	}

	maxLevel := -1
	for id := range g.nodes {
		maxLevel = max(maxLevel, levelOf(id))
	}
	levels := make([][]string, maxLevel+1)
	for id, level := range assigned {
		levels[level] = append(levels[level], id)
	}
	for i := range levels {
		sort.Strings(levels[i])
	}
	return levels, nil
}

// Upstream returns every definition an assembly uses, directly or through
// sub-assemblies.
func (g *Graph) Upstream(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, part := range g.parts[nodeID] {
			if !upstream[part] {
				upstream[part] = true
				mark(part)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(upstream))
	for nodeID := range upstream {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// Roots returns definitions used by no assembly.
func (g *Graph) Roots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.users[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
