package orthography

import "strings"

// convertReplacement rewrites a replacement template that uses backslash
// group references (\1, \g<1>, \g<name>) into the ${...} form used by
// regexp.Expand. Literal dollar signs are escaped. \n and \t become control
// characters, \\ a single backslash; any other escape is kept verbatim.
func convertReplacement(s string) string {
	if !strings.ContainsAny(s, `\$`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$':
			b.WriteString("$$")
		case c != '\\' || i+1 == len(s):
			b.WriteByte(c)
		default:
			next := s[i+1]
			switch {
			case next >= '0' && next <= '9':
				j := i + 1
				for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '9' {
					j++
				}
				b.WriteString("${" + s[i+1:j] + "}")
				i = j - 1
			case next == 'g' && i+2 < len(s) && s[i+2] == '<':
				end := strings.IndexByte(s[i+3:], '>')
				if end < 0 {
					b.WriteByte(c)
					continue
				}
				b.WriteString("${" + s[i+3:i+3+end] + "}")
				i += 3 + end
			case next == 'n':
				b.WriteByte('\n')
				i++
			case next == 't':
				b.WriteByte('\t')
				i++
			case next == '\\':
				b.WriteByte('\\')
				i++
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
