// Package patterns classifies extracted classes against a fixed catalog of
// design-pattern signatures. Signatures are structural heuristics over
// naming and member shape; confidence thresholds are configuration, not
// hard-coded truths.
package patterns

import (
	"fmt"
	"strings"

	"github.com/unitylens/unitylens/internal/extract"
)

// DefaultMinConfidence is the default cutoff below which a match is dropped.
const DefaultMinConfidence = 0.5

// signature scores one class against one pattern. A zero confidence means
// no match at all.
type signature struct {
	name  PatternName
	score func(c *extract.ClassDefinition) (float64, []string)
}

// Detector matches classes against the pattern catalog.
type Detector struct {
	minConfidence float64
	catalog       []signature
}

// NewDetector creates a detector. A non-positive minConfidence falls back
// to DefaultMinConfidence.
func NewDetector(minConfidence float64) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{
		minConfidence: minConfidence,
		catalog: []signature{
			{Singleton, scoreSingleton},
			{Factory, scoreFactory},
			{Observer, scoreObserver},
			{Builder, scoreBuilder},
			{Strategy, scoreStrategy},
			{Command, scoreCommand},
			{ObjectPool, scoreObjectPool},
		},
	}
}

// Detect evaluates every class against every catalog signature and returns
// all matches at or above the confidence cutoff. Output order follows the
// input class order, then catalog order.
func (d *Detector) Detect(classes []extract.ClassDefinition) []DetectedPattern {
	var detected []DetectedPattern
	for i := range classes {
		c := &classes[i]
		if c.Kind == extract.KindEnum {
			continue
		}
		for _, sig := range d.catalog {
			confidence, evidence := sig.score(c)
			if confidence > 1 {
				confidence = 1
			}
			if confidence >= d.minConfidence {
				detected = append(detected, DetectedPattern{
					Pattern:    sig.name,
					ClassName:  c.Name,
					Confidence: confidence,
					Evidence:   evidence,
				})
			}
		}
	}
	return detected
}

// ClassifyComponent reports whether a class is a Unity component by base
// type. Direct bases only: the extractor does not resolve inheritance
// chains across files.
func ClassifyComponent(c *extract.ClassDefinition) ComponentType {
	switch {
	case c.DerivesFrom("MonoBehaviour") || c.DerivesFrom("NetworkBehaviour") || c.DerivesFrom("StateMachineBehaviour"):
		return ComponentBehaviour
	case c.DerivesFrom("ScriptableObject"):
		return ComponentScriptableObject
	}
	return ComponentNone
}

// scoreSingleton: a static field or property of the class's own type plus a
// static accessor is the classic Unity singleton shape.
func scoreSingleton(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string
	simple := c.SimpleName()

	for _, f := range c.Fields {
		if f.IsStatic && typeMatches(f.Type, simple) {
			confidence += 0.5
			evidence = append(evidence, fmt.Sprintf("static field %s of own type", f.Name))
			break
		}
	}
	for _, p := range c.Properties {
		if p.IsStatic && typeMatches(p.Type, simple) {
			confidence += 0.4
			evidence = append(evidence, fmt.Sprintf("static property %s of own type", p.Name))
			break
		}
	}
	for _, m := range c.Methods {
		if m.IsStatic && m.Access == "public" &&
			(strings.EqualFold(m.Name, "GetInstance") || strings.EqualFold(m.Name, "Instance")) {
			confidence += 0.4
			evidence = append(evidence, fmt.Sprintf("static accessor %s()", m.Name))
			break
		}
	}
	for _, m := range c.Methods {
		if m.ReturnType == "" && m.Access == "private" {
			confidence += 0.1
			evidence = append(evidence, "private constructor")
			break
		}
	}
	return confidence, evidence
}

func scoreFactory(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string

	if strings.Contains(c.SimpleName(), "Factory") {
		confidence += 0.4
		evidence = append(evidence, "name contains Factory")
	}
	for _, m := range c.Methods {
		if hasAnyPrefix(m.Name, "Create", "Make", "Spawn") && m.ReturnType != "" && m.ReturnType != "void" {
			confidence += 0.4
			evidence = append(evidence, fmt.Sprintf("creation method %s() returning %s", m.Name, m.ReturnType))
			break
		}
	}
	return confidence, evidence
}

func scoreObserver(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string

	for _, f := range c.Fields {
		if f.IsEvent || isDelegateType(f.Type) || isListenerCollection(f.Type) {
			confidence += 0.5
			evidence = append(evidence, fmt.Sprintf("observer storage field %s %s", f.Type, f.Name))
			break
		}
	}
	for _, m := range c.Methods {
		if hasAnyPrefix(m.Name, "Notify", "Raise", "Broadcast", "Trigger", "Publish") {
			confidence += 0.3
			evidence = append(evidence, fmt.Sprintf("notify method %s()", m.Name))
			break
		}
	}
	for _, m := range c.Methods {
		if hasAnyPrefix(m.Name, "Subscribe", "Unsubscribe", "AddListener", "RemoveListener", "Register", "Attach") {
			confidence += 0.2
			evidence = append(evidence, fmt.Sprintf("subscription method %s()", m.Name))
			break
		}
	}
	return confidence, evidence
}

func scoreBuilder(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string
	simple := c.SimpleName()

	if strings.HasSuffix(simple, "Builder") {
		confidence += 0.4
		evidence = append(evidence, "name ends in Builder")
	}
	fluent := 0
	for _, m := range c.Methods {
		if typeMatches(m.ReturnType, simple) {
			fluent++
		}
	}
	if fluent >= 2 {
		confidence += 0.4
		evidence = append(evidence, fmt.Sprintf("%d fluent methods returning own type", fluent))
	}
	for _, m := range c.Methods {
		if m.Name == "Build" && m.ReturnType != "" && m.ReturnType != "void" {
			confidence += 0.3
			evidence = append(evidence, "Build() method")
			break
		}
	}
	return confidence, evidence
}

func scoreStrategy(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string
	simple := c.SimpleName()

	if strings.Contains(simple, "Strategy") || strings.Contains(simple, "Policy") {
		confidence += 0.5
		evidence = append(evidence, "strategy-style name")
	}
	if c.Kind == extract.KindInterface && len(c.Methods) >= 1 && len(c.Methods) <= 3 && confidence > 0 {
		confidence += 0.3
		evidence = append(evidence, "small interface surface")
	}
	for _, b := range c.BaseTypes {
		if strings.Contains(b, "Strategy") {
			confidence += 0.3
			evidence = append(evidence, fmt.Sprintf("implements %s", b))
			break
		}
	}
	return confidence, evidence
}

func scoreCommand(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string

	if strings.HasSuffix(c.SimpleName(), "Command") {
		confidence += 0.4
		evidence = append(evidence, "name ends in Command")
	}
	if c.DerivesFrom("ICommand") {
		confidence += 0.3
		evidence = append(evidence, "implements ICommand")
	}
	hasExecute := false
	for _, m := range c.Methods {
		if m.Name == "Execute" {
			hasExecute = true
			confidence += 0.4
			evidence = append(evidence, "Execute() method")
			break
		}
	}
	if hasExecute {
		for _, m := range c.Methods {
			if m.Name == "Undo" {
				confidence += 0.2
				evidence = append(evidence, "Undo() method")
				break
			}
		}
	}
	return confidence, evidence
}

func scoreObjectPool(c *extract.ClassDefinition) (float64, []string) {
	var confidence float64
	var evidence []string

	if strings.Contains(c.SimpleName(), "Pool") {
		confidence += 0.4
		evidence = append(evidence, "name contains Pool")
	}
	for _, f := range c.Fields {
		if isCollectionType(f.Type) {
			confidence += 0.2
			evidence = append(evidence, fmt.Sprintf("pooled storage field %s %s", f.Type, f.Name))
			break
		}
	}
	acquire, release := false, false
	for _, m := range c.Methods {
		if hasAnyPrefix(m.Name, "Get", "Acquire", "Spawn", "Rent") {
			acquire = true
		}
		if hasAnyPrefix(m.Name, "Return", "Release", "Despawn", "Recycle") {
			release = true
		}
	}
	if acquire && release {
		confidence += 0.4
		evidence = append(evidence, "acquire/release method pair")
	}
	return confidence, evidence
}

func typeMatches(typeExpr, simpleName string) bool {
	t := strings.TrimSuffix(typeExpr, "?")
	if t == simpleName {
		return true
	}
	if idx := strings.LastIndexByte(t, '.'); idx >= 0 {
		return t[idx+1:] == simpleName
	}
	return false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isDelegateType(t string) bool {
	base := t
	if idx := strings.IndexByte(base, '<'); idx >= 0 {
		base = base[:idx]
	}
	switch base {
	case "Action", "Func", "Delegate", "EventHandler", "UnityAction", "UnityEvent":
		return true
	}
	return false
}

func isListenerCollection(t string) bool {
	if !isCollectionType(t) {
		return false
	}
	inner := t
	if idx := strings.IndexByte(inner, '<'); idx >= 0 {
		inner = strings.TrimSuffix(inner[idx+1:], ">")
	}
	return strings.HasPrefix(inner, "I") &&
		(strings.Contains(inner, "Listener") || strings.Contains(inner, "Observer") || strings.Contains(inner, "Handler"))
}

func isCollectionType(t string) bool {
	base := t
	if idx := strings.IndexByte(base, '<'); idx >= 0 {
		base = base[:idx]
	}
	switch base {
	case "List", "IList", "Queue", "Stack", "HashSet", "Dictionary", "IEnumerable", "ICollection":
		return true
	}
	return strings.HasSuffix(t, "[]")
}
