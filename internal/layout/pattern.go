package layout

import "regexp"

// PatternKind selects how a Pattern compares against a literal string.
type PatternKind int

const (
	// PatternExact matches only the identical string.
	PatternExact PatternKind = iota
	// PatternRegexp matches when the expression is found anywhere in the string.
	PatternRegexp
)

// Pattern is either an exact string or a compiled regular expression.
// Saved layouts cannot tell the two apart; ParsePattern decides by trying to
// compile the text.
type Pattern struct {
	kind PatternKind
	text string
	re   *regexp.Regexp
}

// ExactPattern returns a pattern that only matches s itself.
func ExactPattern(s string) Pattern {
	return Pattern{kind: PatternExact, text: s}
}

// ParsePattern compiles s as a regular expression, falling back to an exact
// pattern when it does not compile.
func ParsePattern(s string) Pattern {
	re, err := regexp.Compile(s)
	if err != nil {
		return ExactPattern(s)
	}
	return Pattern{kind: PatternRegexp, text: s, re: re}
}

// Kind reports which variant p holds.
func (p Pattern) Kind() PatternKind {
	return p.kind
}

// Match reports whether value equals the exact text or contains a match of
// the regular expression.
func (p Pattern) Match(value string) bool {
	if p.kind == PatternRegexp && p.re != nil {
		return p.re.MatchString(value)
	}
	return p.text == value
}

// String returns the literal text or the regular expression source.
func (p Pattern) String() string {
	return p.text
}
