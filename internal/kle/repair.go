package kle

import "strings"

// Repair rewrites relaxed raw-layout text into strict JSON array syntax:
// line endings are normalized, blank lines dropped, one trailing comma per
// line stripped, the lines joined with commas and wrapped in brackets, and
// bare object property names quoted. Repair never validates; text it cannot
// make sense of surfaces as a decode error from the next stage.
func Repair(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var joined strings.Builder
	joined.Grow(len(raw) + 2)
	joined.WriteByte('[')
	first := true
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSuffix(line, ",")
		if !first {
			joined.WriteByte(',')
		}
		first = false
		joined.WriteString(line)
	}
	joined.WriteByte(']')

	return quoteBareKeys(joined.String())
}

// quoteBareKeys wraps unquoted object property names in double quotes.
// Object membership is tracked with a nesting counter rather than the
// single boolean the legacy implementation used, so names appearing after a
// nested object close still repair correctly. String state honors
// backslash escapes.
func quoteBareKeys(s string) string {
	out := make([]byte, 0, len(s)+16)
	var (
		inString bool
		escaped  bool
		depth    int
		// Index into out where the current name candidate began, reset on
		// every '{', '}', ',' and ':'.
		nameStart int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			out = append(out, c)
		case '{':
			depth++
			out = append(out, c)
			nameStart = len(out)
		case '}':
			if depth > 0 {
				depth--
			}
			out = append(out, c)
			nameStart = len(out)
		case ',':
			out = append(out, c)
			nameStart = len(out)
		case ':':
			if depth > 0 {
				name := strings.TrimSpace(string(out[nameStart:]))
				if name != "" && name[0] != '"' {
					out = append(out[:nameStart], '"')
					out = append(out, name...)
					out = append(out, '"')
				}
			}
			out = append(out, c)
			nameStart = len(out)
		default:
			out = append(out, c)
		}
	}

	return string(out)
}
