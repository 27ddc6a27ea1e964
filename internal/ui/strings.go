package ui

import "strings"

// truncateMiddle shortens value by removing characters from the middle so
// both ends stay readable. File extensions of paths are kept.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	ellipsis := []rune("…")
	if limit <= len(ellipsis)+1 {
		return string(runes[:limit])
	}

	if dot := strings.LastIndex(value, "."); dot > strings.LastIndex(value, "/") && dot > 0 {
		ext := []rune(value[dot:])
		base := []rune(value[:dot])
		if len(ext) < 10 && len(ext) < limit/2 {
			keep := limit - len(ext) - len(ellipsis)
			prefix := keep / 2
			suffix := keep - prefix
			return string(base[:prefix]) + string(ellipsis) + string(base[len(base)-suffix:]) + string(ext)
		}
	}

	keep := limit - len(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// expandTabs replaces tab characters so cell widths stay predictable.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	return strings.ReplaceAll(line, "\t", "    ")
}

// hasEscapes reports whether line carries its own ANSI styling.
func hasEscapes(line string) bool {
	return strings.Contains(line, "\x1b[")
}
