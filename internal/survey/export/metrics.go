package export

import (
	"strings"

	"survey-portal/survey-portal-backend/pkg/pdf"
)

// Metrics measures the width of a run of text.
type Metrics interface {
	TextWidth(text string, font pdf.Font) float64
}

// WrapText packs words greedily into lines no wider than maxWidth. A word
// that is wider than maxWidth on its own gets a line to itself. Words are
// separated by any whitespace and rejoined with single spaces.
func WrapText(m Metrics, text string, font pdf.Font, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if m.TextWidth(candidate, font) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

const ellipsis = "..."

// FitText shortens text with a trailing ellipsis until it fits maxWidth.
func FitText(m Metrics, text string, font pdf.Font, maxWidth float64) string {
	if m.TextWidth(text, font) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if m.TextWidth(s, font) <= maxWidth {
			return s
		}
	}
	return ""
}
