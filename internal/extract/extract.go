// Package extract locates a module's declaration block inside loosely
// structured config text. It deliberately uses brace-depth counting over
// line-delimited text rather than a real parser: the sources it scans
// (hand-edited configs, README snippets) are not guaranteed to be
// syntactically closed, and the single failure mode is ErrNotFound.
package extract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNotFound is returned when no extractable block exists for the module.
// It is expected and non-fatal; callers move on to the next source.
var ErrNotFound = errors.New("module block not found")

// openBraceLine matches a line that consists solely of an opening brace,
// ignoring surrounding whitespace.
var openBraceLine = regexp.MustCompile(`^\s*\{\s*$`)

// declPattern matches the declaration line for the given module name.
// The name is quoted so metacharacters in module names cannot widen the
// match, and the closing quote prevents substring collisions ("Foo" must
// not match a module named "Foo2").
func declPattern(module string) *regexp.Regexp {
	return regexp.MustCompile(`module:\s*["']` + regexp.QuoteMeta(module) + `["']`)
}

// Block returns the minimal balanced-brace block declaring the given
// module within text. The block starts at the nearest line above the
// declaration that is a standalone opening brace and ends at the first
// line where cumulative brace depth returns to zero. Any failure —
// no declaration, no preceding opening brace, or a document that ends
// before the depth closes — is ErrNotFound.
func Block(text, module string) (string, error) {
	lines := strings.Split(text, "\n")
	decl := declPattern(module)

	declIdx := -1
	for i, line := range lines {
		if decl.MatchString(line) {
			declIdx = i
			break
		}
	}
	if declIdx == -1 {
		return "", ErrNotFound
	}

	// Scan backwards from the declaration for the opening brace line.
	startIdx := declIdx
	for startIdx > 0 {
		if openBraceLine.MatchString(lines[startIdx]) {
			break
		}
		startIdx--
	}
	if startIdx == 0 && !openBraceLine.MatchString(lines[0]) {
		return "", ErrNotFound
	}

	// Count braces forward from the start until depth returns to zero.
	depth := 0
	endIdx := -1
	for i := startIdx; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{")
		depth -= strings.Count(lines[i], "}")
		if depth == 0 && i > startIdx {
			endIdx = i
			break
		}
	}
	if endIdx == -1 {
		// Truncated or unbalanced input; signal the caller to try the
		// next candidate source.
		return "", ErrNotFound
	}

	return strings.Join(lines[startIdx:endIdx+1], "\n"), nil
}

// declAny matches any module declaration line and captures the name.
var declAny = regexp.MustCompile(`module:\s*["']([^"']+)["']`)

// DeclaredModules returns every module name declared in text, in document
// order, duplicates included.
func DeclaredModules(text string) []string {
	var modules []string
	for _, m := range declAny.FindAllStringSubmatch(text, -1) {
		modules = append(modules, m[1])
	}
	return modules
}
