package directive

import "strings"

// candidateLine finds the first line of buffer with non-blank content.
// It returns the line with any trailing '\r' removed and base, the byte
// offset of the line's first character in buffer.
func candidateLine(buffer string) (line string, base int, ok bool) {
	rest := buffer
	for rest != "" {
		raw, tail, found := strings.Cut(rest, "\n")
		line = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) != "" {
			return line, base, true
		}

		base += len(raw)
		if found {
			base++ // the '\n'
		}
		rest = tail
	}
	return "", 0, false
}

// HeaderLine returns the trimmed header line of buffer, if any.
func HeaderLine(buffer string) (string, bool) {
	line, _, ok := candidateLine(buffer)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line), true
}
