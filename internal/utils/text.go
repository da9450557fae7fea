package utils

import "strconv"

// Ordinal returns the English ordinal for n, e.g. 1 -> "1st", 12 -> "12th", 23 -> "23rd".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// NaiveNounPlural appends "s" to noun unless count is exactly 1.
func NaiveNounPlural(noun string, count int) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
