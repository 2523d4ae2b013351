package engine

import "strings"

// scanComments calls fn for every comment in css with its byte range, skipping
// over string literals. fn returns false to stop the scan.
func scanComments(css string, fn func(start, end int) bool) {
	for i := 0; i < len(css); i++ {
		switch c := css[i]; {
		case c == '"' || c == '\'':
			for i++; i < len(css) && css[i] != c; i++ {
				if css[i] == '\\' {
					i++
				}
			}
		case c == '/' && i+1 < len(css) && css[i+1] == '*':
			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				end = len(css)
			} else {
				end += i + 4
			}
			if !fn(i, end) {
				return
			}
			i = end - 1
		}
	}
}

func isExclamation(comment string) bool {
	return strings.HasPrefix(comment, "/*!")
}

// blankComments replaces the exclamation comments selected by drop with spaces,
// keeping line breaks so positions in the remaining source do not move. drop
// receives the zero-based index of each exclamation comment.
func blankComments(css string, drop func(n int) bool) string {
	var (
		b    []byte
		n    int
		last int
	)
	scanComments(css, func(start, end int) bool {
		if !isExclamation(css[start:end]) {
			return true
		}
		if drop(n) {
			if b == nil {
				b = make([]byte, 0, len(css))
			}
			b = append(b, css[last:start]...)
			for i := start; i < end; i++ {
				if css[i] == '\n' || css[i] == '\r' {
					b = append(b, css[i])
				} else {
					b = append(b, ' ')
				}
			}
			last = end
		}
		n++
		return true
	})
	if b == nil {
		return css
	}
	return string(append(b, css[last:]...))
}

// exclamationComments returns every exclamation comment of css in order.
func exclamationComments(css string) []string {
	var out []string
	scanComments(css, func(start, end int) bool {
		if c := css[start:end]; isExclamation(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}
