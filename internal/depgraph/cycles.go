package depgraph

import (
	"sort"
	"strings"
)

// enumerateCycles finds circular dependencies via DFS. Every back edge to a
// node on the active DFS stack yields the full cycle path; cycles are
// deduplicated by canonical rotation so the same loop entered from different
// start nodes is reported once. A cycle whose closing edge is a cross edge
// to an already-finished node is folded into the first report for that
// strongly connected region rather than enumerated separately. Roots are
// visited in sorted order, which makes the output deterministic.
func enumerateCycles(adj map[string][]string) []Cycle {
	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	visited := make(map[string]bool, len(nodes))
	onStack := make(map[string]int, len(nodes))
	var stack []string

	seen := make(map[string]bool)
	var cycles []Cycle

	record := func(path []string) {
		canonical := canonicalRotation(path)
		key := strings.Join(canonical, "\x00")
		if seen[key] {
			return
		}
		seen[key] = true
		cycles = append(cycles, Cycle{Path: append(canonical, canonical[0])})
	}

	var dfs func(n string)
	dfs = func(n string) {
		visited[n] = true
		onStack[n] = len(stack)
		stack = append(stack, n)

		for _, m := range adj[n] {
			if m == n {
				continue
			}
			if idx, ok := onStack[m]; ok {
				record(append([]string(nil), stack[idx:]...))
				continue
			}
			if !visited[m] {
				dfs(m)
			}
		}

		delete(onStack, n)
		stack = stack[:len(stack)-1]
	}

	for _, n := range nodes {
		if !visited[n] {
			dfs(n)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i].Path, "\x00") < strings.Join(cycles[j].Path, "\x00")
	})
	return cycles
}

// canonicalRotation rotates a cycle so its lexicographically smallest member
// comes first. The path must not repeat the first element at the end.
func canonicalRotation(path []string) []string {
	minIdx := 0
	for i, s := range path {
		if s < path[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(path))
	out = append(out, path[minIdx:]...)
	out = append(out, path[:minIdx]...)
	return out
}
