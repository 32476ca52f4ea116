package parser

import "strings"

// DefaultCommentPrefixes are the comment markers of message bundles.
var DefaultCommentPrefixes = []string{"#"}

// Parser turns raw lines of a properties file into key/value pairs.
//
// Only the subset used by message bundles is understood: one declaration
// per line, split at the first "=". Escapes and continuation lines are
// kept verbatim in the value.
type Parser struct {
	commentPrefixes []string
}

// NewParser creates a Parser. A line whose trimmed text starts with one of
// commentPrefixes is a comment even when it contains "=". With no prefixes
// every non-blank line containing "=" is an assignment.
func NewParser(commentPrefixes ...string) *Parser {
	prefixes := make([]string, 0, len(commentPrefixes))
	for _, p := range commentPrefixes {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Parser{commentPrefixes: prefixes}
}

// Default returns a Parser using DefaultCommentPrefixes.
func Default() *Parser {
	return NewParser(DefaultCommentPrefixes...)
}

// Classify determines the kind of a raw line. It has no side effects.
func (p *Parser) Classify(line string) Line {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Line{Kind: Blank}
	}

	for _, prefix := range p.commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return Line{Kind: Comment}
		}
	}

	key, value, ok := strings.Cut(trimmed, "=")
	if !ok {
		return Line{Kind: Other}
	}

	return Line{
		Kind:  Assignment,
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
	}
}

// Parse collects the assignments of lines. A key declared more than once
// keeps its last value; lines that are not assignments are ignored.
func (p *Parser) Parse(lines []string) Properties {
	props := make(Properties)
	for _, line := range lines {
		l := p.Classify(line)
		if l.Kind != Assignment {
			continue
		}
		props[l.Key] = l.Value
	}
	return props
}
