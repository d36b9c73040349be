// Package textfit shrinks font sizes so rendered text stays inside its
// container. It works from a fixed empirical width factor rather than
// real glyph metrics, which keeps the result identical across machines
// and font fallbacks.
package textfit

import "unicode/utf8"

// WidthFactor is the average glyph advance as a fraction of the font
// size, calibrated against the bold display face the templates use.
const WidthFactor = 0.55

// EstimatedWidth approximates the rendered width of text at the given
// font size.
func EstimatedWidth(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * WidthFactor
}

// FitFontSize returns targetSize when the text already fits inside
// availableWidth, otherwise the largest size whose estimate does.
// Empty text and non-positive widths return targetSize unchanged.
func FitFontSize(text string, targetSize, availableWidth float64) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 || availableWidth <= 0 {
		return targetSize
	}

	if EstimatedWidth(text, targetSize) <= availableWidth {
		return targetSize
	}
	return availableWidth / (float64(n) * WidthFactor)
}
