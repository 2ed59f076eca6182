package gtts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clause punctuation. Latin and Arabic marks end a clause only when
// followed by whitespace, so "3.14" stays whole; full-width marks always
// do.
const (
	clauseMarks    = ".,;:!?…،؛؟"
	fullWidthMarks = "。，、；：！？"
)

// Split breaks text into parts of at most max runes. Parts end after
// clause punctuation where possible, and on word boundaries otherwise; a
// single word longer than max is cut into max-rune pieces. Short clauses
// share a part. Whitespace runs collapse to one space and blank text
// yields no parts.
func Split(text string, max int) []string {
	if max <= 0 {
		max = MaxPartRunes
	}

	p := &packer{max: max}
	for _, clause := range clauses(text) {
		if utf8.RuneCountInString(clause) <= max {
			p.add(clause)
			continue
		}
		p.flush()
		for _, word := range strings.Fields(clause) {
			r := []rune(word)
			if len(r) > max {
				p.flush()
				for len(r) > max {
					p.parts = append(p.parts, string(r[:max]))
					r = r[max:]
				}
			}
			p.add(string(r))
		}
	}
	p.flush()
	return p.parts
}

// clauses cuts text after clause punctuation, collapsing whitespace.
func clauses(text string) []string {
	var out []string
	rs := []rune(text)
	start := 0
	cut := func(end int) {
		if c := strings.Join(strings.Fields(string(rs[start:end])), " "); c != "" {
			out = append(out, c)
		}
		start = end
	}
	for i, r := range rs {
		switch {
		case strings.ContainsRune(fullWidthMarks, r):
			cut(i + 1)
		case strings.ContainsRune(clauseMarks, r) && (i+1 == len(rs) || unicode.IsSpace(rs[i+1])):
			cut(i + 1)
		}
	}
	cut(len(rs))
	return out
}

// packer joins pieces with single spaces into parts of at most max runes.
type packer struct {
	max   int
	parts []string
	cur   strings.Builder
	n     int
}

func (p *packer) add(s string) {
	n := utf8.RuneCountInString(s)
	if p.n > 0 && p.n+1+n > p.max {
		p.flush()
	}
	if p.n > 0 {
		p.cur.WriteByte(' ')
		p.n++
	}
	p.cur.WriteString(s)
	p.n += n
}

func (p *packer) flush() {
	if p.n > 0 {
		p.parts = append(p.parts, p.cur.String())
		p.cur.Reset()
		p.n = 0
	}
}
