package depgraph

// ReferenceKind classifies how one class refers to another.
type ReferenceKind string

const (
	RefInheritance ReferenceKind = "inheritance" // base class or interface
	RefField       ReferenceKind = "field"
	RefProperty    ReferenceKind = "property"
	RefParameter   ReferenceKind = "parameter"
	RefReturn      ReferenceKind = "return"
)

// DependencyEdge is a directed type-to-type reference between two known
// classes. External/framework types never appear: they are not in the
// known-class index.
type DependencyEdge struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Kind ReferenceKind `json:"kind"`
}

// Cycle is a circular dependency path. Path repeats the first class at the
// end ([A, B, C, A]) and always spans at least two distinct classes:
// self-loops are by definition not circular dependencies.
type Cycle struct {
	Path []string `json:"path"`
}

// Result holds the dependency analysis output for one project.
type Result struct {
	Edges  []DependencyEdge `json:"edges"`
	Cycles []Cycle          `json:"cycles"`
}
