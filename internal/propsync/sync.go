package propsync

import (
	"sort"

	"propsync/internal/parser"
)

// TODO marker lines emitted above each run of untranslated keys.
const (
	TodoDivider = "##########################"
	TodoBanner  = "###  TODO: Translate   ###"
)

// Synchronizer rebuilds translation files from the layout of a base file.
// It keeps no state between calls.
type Synchronizer struct {
	parser *parser.Parser
}

// NewSynchronizer creates a Synchronizer that classifies base lines with p.
func NewSynchronizer(p *parser.Parser) *Synchronizer {
	if p == nil {
		p = parser.Default()
	}
	return &Synchronizer{parser: p}
}

// Sync returns the new lines of a target file.
//
// The output follows baseLines: every non-assignment line is copied as is,
// every assignment becomes key=<target value> when the target declares the
// key, and key=<base value> otherwise. A run of untranslated keys is
// preceded by the TODO marker; only a non-assignment line ends the run.
// Keys declared only by the target are not carried over.
func (s *Synchronizer) Sync(base, target parser.Properties, baseLines []string) []string {
	out := make([]string, 0, len(baseLines))
	todoOpen := false

	for _, raw := range baseLines {
		line := s.parser.Classify(raw)
		if line.Kind != parser.Assignment {
			todoOpen = false
			out = append(out, raw)
			continue
		}

		if value, ok := target[line.Key]; ok {
			out = append(out, line.Key+"="+value)
			continue
		}

		if !todoOpen {
			out = append(out, TodoDivider, TodoBanner, TodoDivider)
			todoOpen = true
		}

		value, ok := base[line.Key]
		if !ok {
			value = line.Value
		}
		out = append(out, line.Key+"="+value)
	}

	return out
}

// Diff compares the key sets of a base and a target file. Missing keys are
// declared by base only, obsolete keys by target only. Both are sorted.
func Diff(base, target parser.Properties) (missing, obsolete []string) {
	for key := range base {
		if !target.Has(key) {
			missing = append(missing, key)
		}
	}
	for key := range target {
		if !base.Has(key) {
			obsolete = append(obsolete, key)
		}
	}
	sort.Strings(missing)
	sort.Strings(obsolete)
	return missing, obsolete
}
