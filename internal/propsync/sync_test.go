package propsync

import (
	"testing"

	"propsync/internal/parser"

	"github.com/stretchr/testify/assert"
)

var englishLines = []string{
	"# English properties",
	"greeting=Hello",
	"farewell=Goodbye",
	"welcome=Welcome",
	"# More properties",
	"help=Help",
}

func todo(lines ...string) []string {
	return append([]string{TodoDivider, TodoBanner, TodoDivider}, lines...)
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestTodoMarker(t *testing.T) {
	assert.Equal(t, "##########################", TodoDivider)
	assert.Len(t, TodoBanner, 26)
}

func TestSync(t *testing.T) {
	p := parser.Default()
	s := NewSynchronizer(p)
	base := p.Parse(englishLines)

	tests := []struct {
		name   string
		target parser.Properties
		want   []string
	}{
		{
			name:   "missing key in the middle",
			target: parser.Properties{"greeting": "Bonjour", "farewell": "Au revoir", "help": "Aide"},
			want: concat(
				[]string{"# English properties", "greeting=Bonjour", "farewell=Au revoir"},
				todo("welcome=Welcome"),
				[]string{"# More properties", "help=Aide"},
			),
		},
		{
			name:   "comment closes the block",
			target: parser.Properties{"greeting": "Hallo"},
			want: concat(
				[]string{"# English properties", "greeting=Hallo"},
				todo("farewell=Goodbye", "welcome=Welcome"),
				[]string{"# More properties"},
				todo("help=Help"),
			),
		},
		{
			name:   "fully translated",
			target: parser.Properties{"greeting": "Hola", "farewell": "Adiós", "welcome": "Bienvenido", "help": "Ayuda"},
			want: []string{
				"# English properties", "greeting=Hola", "farewell=Adiós", "welcome=Bienvenido",
				"# More properties", "help=Ayuda",
			},
		},
		{
			name:   "empty target",
			target: parser.Properties{},
			want: concat(
				[]string{"# English properties"},
				todo("greeting=Hello", "farewell=Goodbye", "welcome=Welcome"),
				[]string{"# More properties"},
				todo("help=Help"),
			),
		},
		{
			name:   "orphan keys dropped",
			target: parser.Properties{"greeting": "Ciao", "farewell": "Arrivederci", "welcome": "Benvenuto", "help": "Aiuto", "legacy": "Vecchio"},
			want: []string{
				"# English properties", "greeting=Ciao", "farewell=Arrivederci", "welcome=Benvenuto",
				"# More properties", "help=Aiuto",
			},
		},
		{
			name:   "empty translation is kept",
			target: parser.Properties{"greeting": "", "farewell": "x", "welcome": "y", "help": "z"},
			want: []string{
				"# English properties", "greeting=", "farewell=x", "welcome=y",
				"# More properties", "help=z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sync(base, tt.target, englishLines))
		})
	}
}

func TestSyncTranslatedKeyDoesNotCloseBlock(t *testing.T) {
	s := NewSynchronizer(nil)
	baseLines := []string{"a=A", "b=B", "c=C", "", "d=D"}
	base := parser.Default().Parse(baseLines)

	got := s.Sync(base, parser.Properties{"b": "bb"}, baseLines)

	assert.Equal(t, concat(
		todo("a=A"),
		[]string{"b=bb", "c=C", ""},
		todo("d=D"),
	), got)
}

func TestSyncBlockOpenAtEndOfFile(t *testing.T) {
	s := NewSynchronizer(nil)
	baseLines := []string{"# c", "a=A"}
	base := parser.Default().Parse(baseLines)

	got := s.Sync(base, parser.Properties{}, baseLines)

	assert.Equal(t, concat([]string{"# c"}, todo("a=A")), got)
}

func TestSyncPreservesStructuralLines(t *testing.T) {
	s := NewSynchronizer(nil)
	baseLines := []string{"", "# top", "  ", "a=1", "not a property", "b=2", "#c=3", ""}
	base := parser.Default().Parse(baseLines)

	got := s.Sync(base, parser.Properties{"a": "uno"}, baseLines)

	var structural []string
	p := parser.Default()
	for _, l := range got {
		if p.Classify(l).Kind != parser.Assignment && l != TodoDivider && l != TodoBanner {
			structural = append(structural, l)
		}
	}
	assert.Equal(t, []string{"", "# top", "  ", "not a property", "#c=3", ""}, structural)
	assert.NotContains(t, got, "c=3")
}

func TestSyncNormalizesAssignments(t *testing.T) {
	s := NewSynchronizer(nil)
	baseLines := []string{"  greeting =  Hello  "}
	base := parser.Default().Parse(baseLines)

	assert.Equal(t, []string{"greeting=Salut"}, s.Sync(base, parser.Properties{"greeting": "Salut"}, baseLines))
	assert.Equal(t, todo("greeting=Hello"), s.Sync(base, parser.Properties{}, baseLines))
}

func TestSyncUsesLastBaseValueForDuplicates(t *testing.T) {
	s := NewSynchronizer(nil)
	baseLines := []string{"a=first", "a=second"}
	base := parser.Default().Parse(baseLines)

	assert.Equal(t, todo("a=second", "a=second"), s.Sync(base, parser.Properties{}, baseLines))
}

func TestSyncWithoutCommentPrefixes(t *testing.T) {
	p := parser.NewParser()
	s := NewSynchronizer(p)
	baseLines := []string{"#a=1", "b=2"}
	base := p.Parse(baseLines)

	got := s.Sync(base, parser.Properties{"b": "deux"}, baseLines)

	assert.Equal(t, concat(todo("#a=1"), []string{"b=deux"}), got)
}

func TestDiff(t *testing.T) {
	base := parser.Properties{"a": "1", "b": "2", "c": "3"}
	target := parser.Properties{"b": "x", "z": "y", "": ""}

	missing, obsolete := Diff(base, target)

	assert.Equal(t, []string{"a", "c"}, missing)
	assert.Equal(t, []string{"", "z"}, obsolete)
}

func TestDiffInSync(t *testing.T) {
	missing, obsolete := Diff(parser.Properties{"a": "1"}, parser.Properties{"a": "2"})

	assert.Empty(t, missing)
	assert.Empty(t, obsolete)
}
