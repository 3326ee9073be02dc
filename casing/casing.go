package casing

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// ToPascal joins the words of str, each one starting with an upper case
// letter: "binary-op" gives "BinaryOp". Characters other than letters, digits
// and separators are dropped.
func ToPascal(str string) string {
	var (
		chars []rune
		upper = true
	)
	for r := range iterRunes(str) {
		if isSep(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.To(unicode.UpperCase, r)
		}
		chars = append(chars, r)
		upper = false
	}
	return string(chars)
}

const (
	hyphen     = '-'
	space      = ' '
	underscore = '_'
)

func isSep(r rune) bool {
	return r == hyphen || r == underscore || r == space
}

// iterRunes yields the letters, digits and separators of str. Leading
// separators are skipped and a run of separators is reduced to one.
func iterRunes(str string) iter.Seq[rune] {
	keep := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || isSep(r)
	}
	fn := func(yield func(rune) bool) {
		var last rune = hyphen
		for offset := 0; offset < len(str); {
			r, z := utf8.DecodeRuneInString(str[offset:])
			offset += z

			if !keep(r) || (isSep(last) && isSep(r)) {
				continue
			}
			if !yield(r) {
				break
			}
			last = r
		}
	}
	return fn
}
