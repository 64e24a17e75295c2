// Package risk maps market prices (implied probabilities) to discrete risk
// bands and display colors.
package risk

import "fmt"

// Band is one entry in the risk classification table, covering the integer
// percentage range [Low, High] inclusive.
type Band struct {
	Low   int
	High  int
	Label string
}

// Classification labels returned outside the band table.
const (
	LabelInvalidPrice       = "Invalid Price"
	LabelInvalidProbability = "Invalid Probability"
)

// bands is scanned in order; the first matching range wins. The table has a
// deliberate gap at 31-39, which classifies as Invalid Probability.
var bands = []Band{
	{97, 100, "Very Low Risk"},
	{91, 96, "Low Risk"},
	{87, 90, "Moderately Low Risk"},
	{79, 86, "Moderate Risk"},
	{71, 78, "Moderately High Risk"},
	{61, 70, "High Risk"},
	{50, 60, "Very High Risk"},
	{40, 49, "Extremely High Risk"},
	{20, 30, "Speculative Risk"},
	{0, 19, "Extreme Risk"},
}

// colorBand mirrors Band for the display color scale.
type colorBand struct {
	Low   int
	High  int
	Color string
}

// defaultColor is used for percentages no color band covers.
const defaultColor = "#a3004f"

// colorScale must stay aligned with bands; the classifier tests assert the
// two tables share boundaries.
var colorScale = []colorBand{
	{97, 100, "#00f27d"},
	{91, 96, "#6ce191"},
	{87, 90, "#a6e17d"},
	{79, 86, "#e1df6c"},
	{71, 78, "#f4c242"},
	{61, 70, "#f79f3d"},
	{50, 60, "#f76d6d"},
	{40, 49, "#e1457b"},
	{20, 30, "#ba1f64"},
	{0, 19, defaultColor},
}

// Classify maps a share price in [0, 1] to a risk label and the band's
// percentage range. Prices outside [0, 1] return ("Invalid Price", "N/A");
// percentages falling in a table gap return ("Invalid Probability", "N/A").
func Classify(price float64) (label, rangeStr string) {
	if price < 0.0 || price > 1.0 {
		return LabelInvalidPrice, "N/A"
	}

	pct := int(price * 100)
	for _, b := range bands {
		if pct >= b.Low && pct <= b.High {
			return b.Label, fmt.Sprintf("%d-%d%%", b.Low, b.High)
		}
	}
	return LabelInvalidProbability, "N/A"
}

// ColorFor maps an integer percentage to its band's display color. Same
// first-match scan as Classify; uncovered percentages get the default color.
func ColorFor(pct int) string {
	for _, cb := range colorScale {
		if pct >= cb.Low && pct <= cb.High {
			return cb.Color
		}
	}
	return defaultColor
}

// Bands returns a copy of the classification table, ordered as scanned, for
// display alongside the dashboard.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}
