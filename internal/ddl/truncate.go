package ddl

// Truncate bounds text to maxLen characters, preferring to cut at the last
// sentence end or line break inside the allowed prefix. Text that already
// fits is returned unchanged. Positions are rune positions, so multi-byte
// text keeps its fidelity; the result never exceeds maxLen characters and
// truncating twice with the same limit is a no-op.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	prefix := runes[:maxLen]
	lastPeriod := lastIndexRune(prefix, '.')
	lastNewline := lastIndexRune(prefix, '\n')
	cutoff := 0.7 * float64(maxLen)

	switch {
	case float64(lastPeriod) > cutoff:
		// Cut just after the sentence end, keeping the period.
		return string(runes[:lastPeriod+1])
	case float64(lastNewline) > cutoff:
		return string(runes[:lastNewline])
	default:
		return string(runes[:maxLen-3]) + "..."
	}
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
