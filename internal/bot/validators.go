package bot

import (
	"strconv"
	"strings"
	"unicode"
)

// parseLengthInput accepts "42", "42.5", "42ft" and "42 feet".
func parseLengthInput(text string) (float64, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.TrimRightFunc(cleaned, unicode.IsLetter)
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, ",", "."))

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 || v > 500 {
		return 0, false
	}
	return v, true
}

func parseCountInput(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

// humanize turns an attribute value such as "twin" into "Twin".
func humanize(v string) string {
	v = strings.ReplaceAll(v, "_", " ")
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}
