package depgraph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/unitylens/unitylens/internal/extract"
)

// Builder builds a directed type-to-type dependency graph from extracted
// class definitions. Name resolution is case-sensitive exact match against
// the known-class index; there is no generic-type unification.
type Builder struct{}

// NewBuilder creates a new dependency graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build scans every class's base types, field/property types, and method
// parameter/return types for references to other known classes, then runs
// cycle detection over the resulting graph.
func (b *Builder) Build(classes []extract.ClassDefinition) (*Result, error) {
	index := buildNameIndex(classes)

	edgeSet := make(map[DependencyEdge]struct{})
	addEdge := func(from, typeExpr string, kind ReferenceKind) {
		for _, token := range typeTokens(typeExpr) {
			to, ok := index[token]
			if !ok {
				continue
			}
			edgeSet[DependencyEdge{From: from, To: to, Kind: kind}] = struct{}{}
		}
	}

	for i := range classes {
		c := &classes[i]
		for _, base := range c.BaseTypes {
			addEdge(c.Name, base, RefInheritance)
		}
		for _, f := range c.Fields {
			addEdge(c.Name, f.Type, RefField)
		}
		for _, p := range c.Properties {
			addEdge(c.Name, p.Type, RefProperty)
		}
		for _, m := range c.Methods {
			addEdge(c.Name, m.ReturnType, RefReturn)
			for _, param := range m.Parameters {
				addEdge(c.Name, param.Type, RefParameter)
			}
		}
	}

	edges := make([]DependencyEdge, 0, len(edgeSet))
	for e := range edgeSet {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})

	g := graph.New(graph.StringHash, graph.Directed())
	for i := range classes {
		if err := g.AddVertex(classes[i].Name); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("add vertex %s: %w", classes[i].Name, err)
		}
	}
	for _, e := range edges {
		if e.From == e.To {
			// Self-references stay in the edge list but never enter the
			// graph: a cycle must span at least two distinct classes.
			continue
		}
		if err := g.AddEdge(e.From, e.To); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("add edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("adjacency map: %w", err)
	}
	adj := make(map[string][]string, len(adjacency))
	for from, targets := range adjacency {
		for to := range targets {
			adj[from] = append(adj[from], to)
		}
		sort.Strings(adj[from])
	}

	return &Result{
		Edges:  edges,
		Cycles: enumerateCycles(adj),
	}, nil
}

// buildNameIndex maps both qualified and simple class names to the qualified
// name used as the graph vertex. When two classes share a simple name the
// lexicographically first qualified name wins, deterministically.
func buildNameIndex(classes []extract.ClassDefinition) map[string]string {
	names := make([]string, 0, len(classes))
	for i := range classes {
		names = append(names, classes[i].Name)
	}
	sort.Strings(names)

	index := make(map[string]string, len(names)*2)
	for _, name := range names {
		if _, ok := index[name]; !ok {
			index[name] = name
		}
		simple := name
		if idx := strings.LastIndexByte(simple, '.'); idx >= 0 {
			simple = simple[idx+1:]
		}
		if _, ok := index[simple]; !ok {
			index[simple] = name
		}
	}
	return index
}

// typeTokens splits a type expression into candidate identifiers: generic
// arguments, array element types, and nullable markers are peeled off so
// "List<Enemy>" yields both List and Enemy.
func typeTokens(typeExpr string) []string {
	if typeExpr == "" {
		return nil
	}
	fields := strings.FieldsFunc(typeExpr, func(r rune) bool {
		switch r {
		case '<', '>', ',', '[', ']', '?', '(', ')', ' ', '\t', '\n':
			return true
		}
		return false
	})
	out := fields[:0]
	for _, f := range fields {
		if f == "" || isBuiltinType(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

var builtinTypes = map[string]bool{
	"void": true, "bool": true, "byte": true, "sbyte": true, "char": true,
	"short": true, "ushort": true, "int": true, "uint": true, "long": true,
	"ulong": true, "float": true, "double": true, "decimal": true,
	"string": true, "object": true, "var": true, "dynamic": true,
}

func isBuiltinType(s string) bool {
	return builtinTypes[s]
}
