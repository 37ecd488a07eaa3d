package store

import "strings"

// ftsSpecialChars are the characters that make a bare token ambiguous as an
// FTS5 operator (AND/OR/NOT/NEAR), a prefix-match suffix, or a column
// filter: wrapping the token in quotes forces it to be treated as a literal
// string instead.
const ftsSpecialChars = "-./:*^"

// SanitizeFTSQuery tokenizes text on whitespace, passing quoted phrases
// through verbatim and wrapping any bare token that contains an FTS5
// metacharacter in quotes. This is what stops a query like "tree-sitter"
// from being parsed as `tree NOT sitter`.
func SanitizeFTSQuery(text string) string {
	if text == "" {
		return ""
	}

	var out []string
	var i int
	runes := []rune(text)
	for i < len(runes) {
		for i < len(runes) && runes[i] == ' ' {
			i++
		}
		if i >= len(runes) {
			break
		}
		if runes[i] == '"' {
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			if j < len(runes) {
				out = append(out, string(runes[i:j+1]))
				i = j + 1
				continue
			}
			// unterminated quote: treat the rest as a single bare token
			out = append(out, sanitizeToken(string(runes[i:])))
			break
		}
		j := i
		for j < len(runes) && runes[j] != ' ' {
			j++
		}
		out = append(out, sanitizeToken(string(runes[i:j])))
		i = j
	}
	return strings.Join(out, " ")
}

func sanitizeToken(token string) string {
	if strings.ContainsAny(token, ftsSpecialChars) {
		return `"` + token + `"`
	}
	return token
}
