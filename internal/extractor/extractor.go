// Package extractor locates embedded markup regions inside host-language
// source text. The host code around a region is treated as opaque text; the
// only inspection performed is the bracket/string-aware scan that finds
// region boundaries.
package extractor

// Match is a located, unconsumed markup region. Start and End index the text
// snapshot the match was extracted from: Start is the opening parenthesis,
// End is one past the balancing closing parenthesis, so splicing replaces
// src[Start:End]. Offsets are never valid against a later-spliced buffer
// without correction.
type Match struct {
	FullExpression string
	Content        string
	Start          int
	End            int
}

// Extract scans src and returns an ordered, non-overlapping list of markup
// regions. A region begins at a '(' that is followed, after optional
// whitespace, by '<', and ends at the ')' balancing that '(', counting nested
// parentheses and ignoring parenthesis characters inside single- or
// double-quoted string literals. A candidate with no balancing ')' is skipped
// silently and scanning resumes at the next character.
func Extract(src string) []Match {
	var matches []Match

	i := 0
	for i < len(src) {
		if src[i] != '(' {
			i++
			continue
		}

		// The '<' must be the first non-whitespace character after '('.
		j := i + 1
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if j >= len(src) || src[j] != '<' {
			i++
			continue
		}

		end := findBalancing(src, i)
		if end < 0 {
			// Unbalanced candidate: not an extraction error, just host
			// text we cannot delimit. Skip the '(' and keep scanning.
			i++
			continue
		}

		// Content spans from the '<' up to the ')' with trailing
		// whitespace dropped; the full expression keeps both parens.
		contentEnd := end
		for contentEnd > j && isSpace(src[contentEnd-1]) {
			contentEnd--
		}

		matches = append(matches, Match{
			FullExpression: src[i : end+1],
			Content:        src[j:contentEnd],
			Start:          i,
			End:            end + 1,
		})

		i = end + 1
	}

	return matches
}

// findBalancing returns the index of the ')' that balances the '(' at open,
// or -1 when the input ends first. Parentheses inside quoted string literals
// do not count; a backslash immediately preceding the quote character keeps
// the string open.
func findBalancing(src string, open int) int {
	depth := 1
	inString := false
	var quote byte

	for k := open + 1; k < len(src); k++ {
		c := src[k]

		if inString {
			if c == quote && src[k-1] != '\\' {
				inString = false
			}
			continue
		}

		switch c {
		case '\'', '"':
			inString = true
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return k
			}
		}
	}

	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
