package textmeasure

import "strings"

// Ellipsis is appended to truncated labels.
const Ellipsis = "..."

// Truncate shortens text to fit maxWidth using the default family.
func (m *Measurer) Truncate(text string, maxWidth, fontSize float64) string {
	return m.TruncateFamily(text, maxWidth, fontSize, m.family)
}

// TruncateFamily shortens text so its measured width is at most maxWidth.
//
// Text that already fits is returned unchanged. Multi-line text is
// truncated line by line. Otherwise the longest rune prefix p for which
// p+Ellipsis fits is found by binary search; if not even the bare ellipsis
// fits, Ellipsis is returned. Candidates are measured as the final string,
// so the result never exceeds maxWidth once maxWidth admits the ellipsis,
// and truncating a truncated label returns it unchanged.
func (m *Measurer) TruncateFamily(text string, maxWidth, fontSize float64, family string) string {
	if text == "" {
		return text
	}
	if m.MeasureWidth(text, fontSize, family) <= maxWidth {
		return text
	}
	if strings.Contains(text, "\n") {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = m.TruncateFamily(line, maxWidth, fontSize, family)
		}
		return strings.Join(lines, "\n")
	}

	runes := []rune(text)
	fits := func(n int) bool {
		return m.MeasureWidth(string(runes[:n])+Ellipsis, fontSize, family) <= maxWidth
	}

	best := -1
	low, high := 0, len(runes)
	for low <= high {
		mid := (low + high) / 2
		if fits(mid) {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	if best <= 0 {
		return Ellipsis
	}
	return string(runes[:best]) + Ellipsis
}
