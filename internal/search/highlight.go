package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/atlasfield/canvass/pkg/utils"
)

// Highlight wraps every occurrence of each term in <mark> tags, matching
// case- and diacritic-insensitively while keeping the original spelling
// inside the tags. Terms are processed in the order given; a later term may
// re-wrap a substring already wrapped by an earlier term.
func Highlight(text string, terms []string) string {
	for _, term := range terms {
		if term == "" {
			continue
		}
		text = wrapTerm(text, term)
	}
	return text
}

// foldOffsets folds text the way Normalize does (marks stripped, lowercased,
// whitespace kept) and maps every folded byte back to the starting byte of
// the original rune it came from. The returned offsets carry one extra entry
// for len(text) so a match end always has a boundary to map to.
func foldOffsets(text string) (string, []int) {
	var b strings.Builder
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		f := foldRune(r)
		b.WriteString(f)
		for j := 0; j < len(f); j++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return b.String(), offsets
}

func foldRune(r rune) string {
	s := string(r)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	return strings.ToLower(s)
}

func wrapTerm(text, term string) string {
	needle := Normalize(term, false)
	if needle == "" {
		return text
	}
	folded, offsets := foldOffsets(text)
	var b strings.Builder
	fpos, opos := 0, 0
	for {
		i := strings.Index(folded[fpos:], needle)
		if i < 0 {
			b.WriteString(text[opos:])
			return b.String()
		}
		start := offsets[fpos+i]
		end := offsets[fpos+i+len(needle)]
		b.WriteString(text[opos:start])
		b.WriteString("<mark>")
		b.WriteString(text[start:end])
		b.WriteString("</mark>")
		fpos += i + len(needle)
		opos = end
	}
}

// ExtractContext returns a window of contextLen characters either side of
// the first normalized occurrence of term in text (case- and
// diacritic-insensitive), with an ellipsis on any side where the window cut
// the string. The window expands by whole runes, never through the middle of
// one. When the term does not occur, the result is a 2*contextLen prefix of
// the text (ellipsis appended only when it truncates).
func ExtractContext(text, term string, contextLen int) string {
	needle := Normalize(term, false)
	idx := -1
	var offsets []int
	if needle != "" {
		var folded string
		folded, offsets = foldOffsets(text)
		idx = strings.Index(folded, needle)
	}
	if idx < 0 {
		return utils.Truncate(text, 2*contextLen)
	}

	start := offsets[idx]
	for n := 0; n < contextLen && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := offsets[idx+len(needle)]
	for n := 0; n < contextLen && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	out := text[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
