package service

import "strings"

// Slugify lowercases the name, drops apostrophes, collapses runs of other
// non-alphanumerics into a single hyphen, and trims leading/trailing hyphens.
// "Men's Training Tee!!" becomes "mens-training-tee".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == '\'' || r == '’':
			// apostrophes vanish instead of splitting the word
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
