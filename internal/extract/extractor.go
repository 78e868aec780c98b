package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor performs a heuristic pass over C# source text and produces
// ClassDefinition records. It is keyword and brace matching, not a compiler
// front end: malformed snippets are skipped with a Warning rather than
// failing the file.
type Extractor struct{}

// NewExtractor creates a new class extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var (
	typeDeclRe = regexp.MustCompile(
		`((?:(?:public|private|protected|internal|static|sealed|abstract|partial|readonly|ref|new|unsafe)\s+)*)` +
			`\b(class|interface|struct|enum)\s+([A-Za-z_]\w*)(<[^{;=]*?>)?\s*(:\s*[^{;]+?)?\s*\{`)

	fileScopedNamespaceRe = regexp.MustCompile(`(?m)^\s*namespace\s+([\w.]+)\s*;`)
	blockNamespaceRe      = regexp.MustCompile(`namespace\s+([\w.]+)\s*\{`)

	methodRe = regexp.MustCompile(
		`((?:(?:public|private|protected|internal|static|virtual|override|abstract|sealed|async|extern|new|unsafe|partial)\s+)*)` +
			`([A-Za-z_][\w.]*(?:<[^(){};]*?>)?(?:\[[\s,]*\])?\??)\s+([A-Za-z_]\w*)(?:<[^(){};]*?>)?\s*\(([^()]*)\)\s*(?:where\s[^{;]*?)?(\{|=>|;)`)

	propertyRe = regexp.MustCompile(
		`((?:(?:public|private|protected|internal|static|virtual|override|abstract|new|sealed)\s+)*)` +
			`([A-Za-z_][\w.]*(?:<[^(){};]*?>)?(?:\[[\s,]*\])?\??)\s+([A-Za-z_]\w*)\s*\{`)

	fieldRe = regexp.MustCompile(
		`(?m)^[ \t]*(?:\[[^\]\n]*\][ \t]*)*((?:(?:public|private|protected|internal|static|readonly|const|volatile|new|event)\s+)+)?` +
			`([A-Za-z_][\w.]*(?:<[^(){};=]*?>)?(?:\[[\s,]*\])?\??)\s+([A-Za-z_]\w*)(?:\s*=[^;{]*)?;`)

	branchRe = regexp.MustCompile(`\b(if|for|foreach|while|case|catch)\b|&&|\|\||\?\?`)

	exprPropertyRe = regexp.MustCompile(
		`(?m)^[ \t]*((?:(?:public|private|protected|internal|static|virtual|override|abstract|new|sealed)\s+)+)` +
			`([A-Za-z_][\w.]*(?:<[^(){};]*?>)?(?:\[[\s,]*\])?\??)\s+([A-Za-z_]\w*)\s*=>[^;]*;`)

	accessorRe = regexp.MustCompile(`\b(get|set)\b`)
)

// ExtractFile extracts all type declarations from one source file.
// path is recorded on the resulting definitions; content is the raw file text.
func (e *Extractor) ExtractFile(path, content string) ([]ClassDefinition, []Warning) {
	var warnings []Warning

	clean, w := sanitize(content)
	if w != "" {
		warnings = append(warnings, Warning{File: path, Line: 1, Message: w})
	}

	lines := newLineIndex(clean)
	namespaces := findNamespaces(clean)

	var classes []ClassDefinition
	e.extractTypes(path, clean, 0, len(clean), "", lines, namespaces, &classes, &warnings)

	return classes, warnings
}

// extractTypes finds type declarations within clean[start:end], recursing into
// nested type bodies. prefix qualifies nested type names.
func (e *Extractor) extractTypes(path, clean string, start, end int, prefix string, lines *lineIndex, namespaces []nsSpan, classes *[]ClassDefinition, warnings *[]Warning) {
	pos := start
	for pos < end {
		loc := typeDeclRe.FindStringSubmatchIndex(clean[pos:end])
		if loc == nil {
			return
		}
		declStart := pos + loc[0]
		openBrace := pos + loc[1] - 1

		modifiers := submatch(clean, pos, loc, 1)
		kind := TypeKind(submatch(clean, pos, loc, 2))
		name := submatch(clean, pos, loc, 3)
		baseList := submatch(clean, pos, loc, 5)

		bodyEnd := matchBrace(clean, openBrace)
		if bodyEnd < 0 {
			*warnings = append(*warnings, Warning{
				File:    path,
				Line:    lines.at(declStart),
				Message: "unbalanced braces after " + string(kind) + " " + name + ", declaration skipped",
			})
			pos = openBrace + 1
			continue
		}

		qualified := name
		if prefix != "" {
			qualified = prefix + "." + name
		}

		def := ClassDefinition{
			Name:       qualified,
			Kind:       kind,
			Namespace:  namespaceAt(namespaces, declStart),
			BaseTypes:  parseBaseList(baseList),
			IsPartial:  strings.Contains(modifiers, "partial"),
			IsStatic:   strings.Contains(modifiers, "static"),
			IsAbstract: strings.Contains(modifiers, "abstract"),
			File:       path,
			StartLine:  lines.at(declStart),
			EndLine:    lines.at(bodyEnd),
		}

		body := clean[openBrace+1 : bodyEnd]
		bodyOffset := openBrace + 1

		if kind != KindEnum {
			// Nested types are extracted first, then blanked out so the
			// member pass only sees this type's own declarations.
			blanked := e.extractNested(path, clean, bodyOffset, bodyEnd, qualified, lines, namespaces, classes, warnings, body)
			e.extractMembers(&def, blanked, bodyOffset, lines)
		}

		*classes = append(*classes, def)
		pos = bodyEnd + 1
	}
}

// extractNested recurses into nested type declarations inside body and
// returns a copy of body with their spans blanked.
func (e *Extractor) extractNested(path, clean string, bodyOffset, bodyEnd int, prefix string, lines *lineIndex, namespaces []nsSpan, classes *[]ClassDefinition, warnings *[]Warning, body string) string {
	blanked := []byte(body)
	pos := 0
	for pos < len(body) {
		loc := typeDeclRe.FindStringSubmatchIndex(body[pos:])
		if loc == nil {
			break
		}
		declStart := pos + loc[0]
		openBrace := pos + loc[1] - 1
		nestedEnd := matchBrace(body, openBrace)
		if nestedEnd < 0 {
			break
		}
		e.extractTypes(path, clean, bodyOffset+declStart, bodyOffset+nestedEnd+1, prefix, lines, namespaces, classes, warnings)
		blankRange(blanked, declStart, nestedEnd+1)
		pos = nestedEnd + 1
	}
	return string(blanked)
}

// extractMembers walks a type body (nested types already blanked) and records
// methods, properties, and fields. Method and accessor bodies are consumed as
// they are matched so statement-level text never reaches the field pass.
func (e *Extractor) extractMembers(def *ClassDefinition, body string, bodyOffset int, lines *lineIndex) {
	remaining := []byte(body)
	simpleName := def.Name
	if idx := lastDot(simpleName); idx >= 0 {
		simpleName = simpleName[idx+1:]
	}

	// Pass 1: methods and constructors.
	pos := 0
	for pos < len(body) {
		loc := methodRe.FindStringSubmatchIndex(string(remaining[pos:]))
		if loc == nil {
			break
		}
		matchStart := pos + loc[0]
		matchEnd := pos + loc[1]

		modifiers := submatchBytes(remaining, pos, loc, 1)
		returnType := submatchBytes(remaining, pos, loc, 2)
		name := submatchBytes(remaining, pos, loc, 3)
		params := submatchBytes(remaining, pos, loc, 4)
		terminator := submatchBytes(remaining, pos, loc, 5)

		// "public Foo(" parses as returnType=public, name=Foo: that is the
		// constructor form. Reject other control-keyword false positives.
		isCtor := name == simpleName && isModifierWord(returnType)
		if !isCtor && (isReservedWord(returnType) || isReservedWord(name)) {
			pos = matchEnd
			continue
		}

		method := MethodDefinition{
			Name:       name,
			ReturnType: returnType,
			Parameters: parseParameters(params),
			Access:     accessOf(modifiers + " " + returnType),
			IsStatic:   strings.Contains(modifiers, "static") || (isCtor && strings.Contains(returnType, "static")),
			ClassName:  def.Name,
			Line:       lines.at(bodyOffset + matchStart),
		}
		if isCtor {
			method.ReturnType = ""
		}

		bodyStart := matchEnd
		switch terminator {
		case "{":
			end := matchBrace(string(remaining), matchEnd-1)
			if end < 0 {
				blankRange(remaining, matchStart, len(remaining))
				def.Methods = append(def.Methods, method)
				return
			}
			method.BranchCount = countBranches(string(remaining[bodyStart:end]))
			blankRange(remaining, matchStart, end+1)
			pos = end + 1
		case "=>":
			end := indexFrom(remaining, matchEnd, ';')
			if end < 0 {
				end = len(remaining) - 1
			}
			method.BranchCount = countBranches(string(remaining[bodyStart:end]))
			blankRange(remaining, matchStart, end+1)
			pos = end + 1
		default: // ";" means an abstract or interface member, no body
			blankRange(remaining, matchStart, matchEnd)
			pos = matchEnd
		}
		def.Methods = append(def.Methods, method)
	}

	// Pass 2: properties.
	pos = 0
	for pos < len(remaining) {
		loc := propertyRe.FindStringSubmatchIndex(string(remaining[pos:]))
		if loc == nil {
			break
		}
		matchStart := pos + loc[0]
		openBrace := pos + loc[1] - 1

		modifiers := submatchBytes(remaining, pos, loc, 1)
		propType := submatchBytes(remaining, pos, loc, 2)
		name := submatchBytes(remaining, pos, loc, 3)

		end := matchBrace(string(remaining), openBrace)
		if end < 0 {
			pos = openBrace + 1
			continue
		}
		accessorBody := string(remaining[openBrace+1 : end])

		if isReservedWord(propType) || isReservedWord(name) || !accessorRe.MatchString(accessorBody) {
			pos = openBrace + 1
			continue
		}

		def.Properties = append(def.Properties, PropertyDefinition{
			Name:       name,
			Type:       propType,
			Access:     accessOf(modifiers),
			IsStatic:   strings.Contains(modifiers, "static"),
			IsReadOnly: !strings.Contains(accessorBody, "set"),
		})
		blankRange(remaining, matchStart, end+1)
		pos = end + 1
	}

	// Pass 2b: expression-bodied properties ("public int X => 42;").
	for _, loc := range exprPropertyRe.FindAllSubmatchIndex(remaining, -1) {
		modifiers := string(bytesAt(remaining, loc, 1))
		propType := string(bytesAt(remaining, loc, 2))
		name := string(bytesAt(remaining, loc, 3))
		if isReservedWord(propType) || isReservedWord(name) {
			continue
		}
		def.Properties = append(def.Properties, PropertyDefinition{
			Name:       name,
			Type:       propType,
			Access:     accessOf(modifiers),
			IsStatic:   strings.Contains(modifiers, "static"),
			IsReadOnly: true,
		})
		blankRange(remaining, loc[0], loc[1])
	}

	// Pass 3: fields and events.
	for _, loc := range fieldRe.FindAllSubmatchIndex(remaining, -1) {
		modifiers := string(bytesAt(remaining, loc, 1))
		fieldType := string(bytesAt(remaining, loc, 2))
		name := string(bytesAt(remaining, loc, 3))

		if isReservedWord(fieldType) || isReservedWord(name) || fieldType == "using" || fieldType == "return" {
			continue
		}

		def.Fields = append(def.Fields, FieldDefinition{
			Name:       name,
			Type:       fieldType,
			Access:     accessOf(modifiers),
			IsStatic:   strings.Contains(modifiers, "static") || strings.Contains(modifiers, "const"),
			IsReadonly: strings.Contains(modifiers, "readonly") || strings.Contains(modifiers, "const"),
			IsEvent:    strings.Contains(modifiers, "event"),
		})
	}
}

// countBranches counts branching tokens in a sanitized body span.
// The +1 baseline path is added by the complexity scorer, not here.
func countBranches(body string) int {
	return len(branchRe.FindAllString(body, -1))
}

// sanitize blanks out comments and string/char literals so that brace
// matching and keyword counting only see code. Newlines are preserved to
// keep line numbers stable. Returns a non-empty message if the file ends
// inside an unterminated construct.
func sanitize(src string) (string, string) {
	out := []byte(src)
	n := len(src)
	i := 0
	warn := ""

	blank := func(from, to int) {
		for j := from; j < to && j < n; j++ {
			if out[j] != '\n' && out[j] != '\r' {
				out[j] = ' '
			}
		}
	}

	for i < n {
		c := src[i]
		switch {
		case c == '/' && i+1 < n && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = n - i
			}
			blank(i, i+end)
			i += end
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				blank(i, n)
				warn = "unterminated block comment"
				i = n
				break
			}
			blank(i, i+2+end+2)
			i += 2 + end + 2
		case c == '@' && i+1 < n && src[i+1] == '"':
			// Verbatim string: "" is the only escape.
			j := i + 2
			for j < n {
				if src[j] == '"' {
					if j+1 < n && src[j+1] == '"' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			if j >= n {
				warn = "unterminated verbatim string"
			}
			blank(i, minInt(j+1, n))
			i = j + 1
		case c == '"':
			j := i + 1
			for j < n && src[j] != '"' && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			blank(i, minInt(j+1, n))
			i = j + 1
		case c == '\'':
			j := i + 1
			for j < n && src[j] != '\'' && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			blank(i, minInt(j+1, n))
			i = j + 1
		default:
			i++
		}
	}
	return string(out), warn
}

// matchBrace returns the index of the '}' closing the '{' at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nsSpan maps a text span to the namespace covering it.
type nsSpan struct {
	name  string
	start int
	end   int
}

// findNamespaces locates file-scoped and block namespaces. Block namespaces
// nest; the innermost covering span wins and nested names are joined.
func findNamespaces(clean string) []nsSpan {
	var spans []nsSpan
	if m := fileScopedNamespaceRe.FindStringSubmatchIndex(clean); m != nil {
		spans = append(spans, nsSpan{name: clean[m[2]:m[3]], start: m[1], end: len(clean)})
	}
	for _, m := range blockNamespaceRe.FindAllStringSubmatchIndex(clean, -1) {
		open := m[1] - 1
		end := matchBrace(clean, open)
		if end < 0 {
			end = len(clean)
		}
		spans = append(spans, nsSpan{name: clean[m[2]:m[3]], start: open, end: end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

func namespaceAt(spans []nsSpan, offset int) string {
	var parts []string
	for _, s := range spans {
		if offset >= s.start && offset < s.end {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, ".")
}

// lineIndex converts byte offsets to 1-indexed line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(s string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (l *lineIndex) at(offset int) int {
	lo, hi := 0, len(l.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

func parseBaseList(baseList string) []string {
	baseList = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(baseList), ":"))
	if baseList == "" {
		return nil
	}
	var bases []string
	depth := 0
	start := 0
	for i := 0; i <= len(baseList); i++ {
		if i == len(baseList) || (baseList[i] == ',' && depth == 0) {
			b := strings.TrimSpace(baseList[start:i])
			// Generic constraints leak into the captured base list without
			// a real parser; cut everything from "where" on.
			if idx := strings.Index(b, " where "); idx >= 0 {
				b = strings.TrimSpace(b[:idx])
			}
			if b != "" && !strings.HasPrefix(b, "where ") {
				bases = append(bases, b)
			}
			start = i + 1
			continue
		}
		switch baseList[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		}
	}
	return bases
}

func parseParameters(params string) []Parameter {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	var out []Parameter
	depth := 0
	start := 0
	for i := 0; i <= len(params); i++ {
		if i == len(params) || (params[i] == ',' && depth == 0) {
			p := strings.TrimSpace(params[start:i])
			if p != "" {
				out = append(out, splitParameter(p))
			}
			start = i + 1
			continue
		}
		switch params[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		}
	}
	return out
}

func splitParameter(p string) Parameter {
	// Strip default value and parameter modifiers.
	if eq := strings.IndexByte(p, '='); eq >= 0 {
		p = strings.TrimSpace(p[:eq])
	}
	for _, mod := range []string{"ref ", "out ", "in ", "params ", "this "} {
		p = strings.TrimPrefix(p, mod)
	}
	idx := strings.LastIndexAny(p, " \t\n")
	if idx < 0 {
		return Parameter{Type: p}
	}
	return Parameter{Type: strings.TrimSpace(p[:idx]), Name: p[idx+1:]}
}

func accessOf(modifiers string) string {
	switch {
	case strings.Contains(modifiers, "public"):
		return "public"
	case strings.Contains(modifiers, "protected"):
		return "protected"
	case strings.Contains(modifiers, "internal"):
		return "internal"
	default:
		return "private"
	}
}

var reservedWords = map[string]bool{
	"if": true, "else": true, "for": true, "foreach": true, "while": true,
	"do": true, "switch": true, "case": true, "return": true, "new": true,
	"throw": true, "using": true, "lock": true, "catch": true, "try": true,
	"finally": true, "typeof": true, "nameof": true, "sizeof": true,
	"base": true, "this": true, "namespace": true, "get": true, "set": true,
	"yield": true, "await": true, "default": true, "checked": true,
	"unchecked": true, "fixed": true, "goto": true, "operator": true,
}

func isReservedWord(s string) bool {
	return reservedWords[strings.TrimSuffix(s, "?")]
}

var modifierWords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true, "static": true,
}

func isModifierWord(s string) bool {
	for _, w := range strings.Fields(s) {
		if !modifierWords[w] {
			return false
		}
	}
	return len(s) > 0
}

func submatch(s string, base int, loc []int, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return s[base+loc[2*group] : base+loc[2*group+1]]
}

func submatchBytes(b []byte, base int, loc []int, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return strings.TrimSpace(string(b[base+loc[2*group] : base+loc[2*group+1]]))
}

func bytesAt(b []byte, loc []int, group int) []byte {
	if loc[2*group] < 0 {
		return nil
	}
	return b[loc[2*group]:loc[2*group+1]]
}

func blankRange(b []byte, from, to int) {
	for i := from; i < to && i < len(b); i++ {
		if b[i] != '\n' && b[i] != '\r' {
			b[i] = ' '
		}
	}
}

func indexFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
