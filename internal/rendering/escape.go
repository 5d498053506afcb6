package rendering

import "strings"

// latexSpecials maps each LaTeX special character to its escaped form.
var latexSpecials = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'^':  `\textasciicircum{}`,
	'_':  `\_`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~ so
// resume text can be embedded in a template verbatim.
func EscapeLaTeX(text string) string {
	if !strings.ContainsAny(text, `\{}$&%#^_~`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16)
	for _, r := range text {
		if escaped, ok := latexSpecials[r]; ok {
			b.WriteString(escaped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
