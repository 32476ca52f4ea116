package parser

// Kind classifies a single raw line of a properties file.
type Kind int

const (
	// Other is a non-empty line that is neither a comment nor an assignment.
	Other Kind = iota
	// Blank is a line that is empty after trimming whitespace.
	Blank
	// Comment is a line starting with one of the parser's comment prefixes.
	Comment
	// Assignment is a key=value declaration.
	Assignment
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Assignment:
		return "assignment"
	default:
		return "other"
	}
}

// Line is the classification of one raw line.
type Line struct {
	Kind Kind
	// Key and Value are only set for assignments. Both may be empty.
	Key   string
	Value string
}

// Properties maps each declared key to its value. A map built by Parse is
// a snapshot of one file and is not modified afterwards.
type Properties map[string]string

// Has reports whether key is declared, including declarations with an
// empty value.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}
