package patterns

// PatternName identifies a design pattern in the fixed catalog.
type PatternName string

const (
	Singleton  PatternName = "Singleton"
	Factory    PatternName = "Factory"
	Observer   PatternName = "Observer"
	Builder    PatternName = "Builder"
	Strategy   PatternName = "Strategy"
	Command    PatternName = "Command"
	ObjectPool PatternName = "ObjectPool"
)

// DetectedPattern records a heuristic structural match of one class against
// one catalog signature. Classification, not proof: ambiguous matches are
// kept with lower confidence rather than suppressed.
type DetectedPattern struct {
	Pattern    PatternName `json:"pattern"`
	ClassName  string      `json:"class_name"`
	Confidence float64     `json:"confidence"` // 0..1
	Evidence   []string    `json:"evidence"`
}

// ComponentType classifies a class by its Unity base type.
type ComponentType string

const (
	ComponentBehaviour        ComponentType = "MonoBehaviour"
	ComponentScriptableObject ComponentType = "ScriptableObject"
	ComponentNone             ComponentType = ""
)
