package extract

// TypeKind represents the kind of a C# type declaration.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindStruct    TypeKind = "struct"
	KindEnum      TypeKind = "enum"
)

// ClassDefinition represents one type declaration found in a source file.
// Nested types are flattened into the output list with qualified names
// (e.g., "Outer.Inner"). Partial declarations are kept as separate records.
type ClassDefinition struct {
	Name       string               `json:"name"`       // Qualified name for nested types
	Kind       TypeKind             `json:"kind"`       // class/interface/struct/enum
	Namespace  string               `json:"namespace"`  // Enclosing namespace, "" if none
	BaseTypes  []string             `json:"base_types"` // Base class and interfaces, as written
	IsPartial  bool                 `json:"is_partial"`
	IsStatic   bool                 `json:"is_static"`
	IsAbstract bool                 `json:"is_abstract"`
	Methods    []MethodDefinition   `json:"methods"`
	Properties []PropertyDefinition `json:"properties"`
	Fields     []FieldDefinition    `json:"fields"`
	File       string               `json:"file"`       // Relative source file path
	StartLine  int                  `json:"start_line"` // 1-indexed
	EndLine    int                  `json:"end_line"`   // 1-indexed
}

// MethodDefinition represents a method or constructor declaration.
type MethodDefinition struct {
	Name        string      `json:"name"`
	ReturnType  string      `json:"return_type"` // "" for constructors
	Parameters  []Parameter `json:"parameters"`
	Access      string      `json:"access"` // public/private/protected/internal
	IsStatic    bool        `json:"is_static"`
	BranchCount int         `json:"branch_count"` // Branching tokens in the body span
	ClassName   string      `json:"class_name"`   // Back-reference to the containing class
	Line        int         `json:"line"`
}

// Parameter is a (name, type) pair from a method signature.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// PropertyDefinition represents a property declaration.
type PropertyDefinition struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Access     string `json:"access"`
	IsStatic   bool   `json:"is_static"`
	IsReadOnly bool   `json:"is_read_only"` // Getter only, no setter
}

// FieldDefinition represents a field or event declaration.
type FieldDefinition struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Access     string `json:"access"`
	IsStatic   bool   `json:"is_static"`
	IsReadonly bool   `json:"is_readonly"` // readonly or const
	IsEvent    bool   `json:"is_event"`
}

// Warning records a snippet the heuristic pass could not make sense of.
// Warnings are diagnostics, never fatal: extraction is best-effort.
type Warning struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// DerivesFrom reports whether the class lists the given type among its bases.
// Matching is by simple name, so "MonoBehaviour" matches
// "UnityEngine.MonoBehaviour".
func (c *ClassDefinition) DerivesFrom(base string) bool {
	for _, b := range c.BaseTypes {
		if b == base {
			return true
		}
		if idx := lastDot(b); idx >= 0 && b[idx+1:] == base {
			return true
		}
	}
	return false
}

// SimpleName returns the last segment of a qualified nested-type name.
func (c *ClassDefinition) SimpleName() string {
	if idx := lastDot(c.Name); idx >= 0 {
		return c.Name[idx+1:]
	}
	return c.Name
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
