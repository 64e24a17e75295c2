package risk

import "testing"

func TestClassify_ValidBoundaries(t *testing.T) {
	tests := []struct {
		price     float64
		wantLabel string
		wantRange string
	}{
		{0.00, "Extreme Risk", "0-19%"},
		{0.19, "Extreme Risk", "0-19%"},
		{0.20, "Speculative Risk", "20-30%"},
		{0.50, "Very High Risk", "50-60%"},
		{0.61, "High Risk", "61-70%"},
		{0.79, "Moderate Risk", "79-86%"},
		{0.91, "Low Risk", "91-96%"},
		{0.97, "Very Low Risk", "97-100%"},
		{1.00, "Very Low Risk", "97-100%"},
	}

	for _, tt := range tests {
		label, rangeStr := Classify(tt.price)
		if label != tt.wantLabel {
			t.Errorf("Classify(%v) label = %q, want %q", tt.price, label, tt.wantLabel)
		}
		if rangeStr != tt.wantRange {
			t.Errorf("Classify(%v) range = %q, want %q", tt.price, rangeStr, tt.wantRange)
		}
	}
}

func TestClassify_ExtremesAreValid(t *testing.T) {
	for _, price := range []float64{0.0, 1.0} {
		label, _ := Classify(price)
		if label == LabelInvalidProbability || label == LabelInvalidPrice {
			t.Errorf("Classify(%v) = %q, want a valid band label", price, label)
		}
	}
}

func TestClassify_InvalidPrice(t *testing.T) {
	for _, price := range []float64{-0.01, 1.01, -5, 2} {
		label, rangeStr := Classify(price)
		if label != LabelInvalidPrice {
			t.Errorf("Classify(%v) label = %q, want %q", price, label, LabelInvalidPrice)
		}
		if rangeStr != "N/A" {
			t.Errorf("Classify(%v) range = %q, want %q", price, rangeStr, "N/A")
		}
	}
}

func TestClassify_TableGap(t *testing.T) {
	// 31-39 is not covered by any band; a defined fallback, not a crash.
	for _, price := range []float64{0.31, 0.35, 0.39} {
		label, rangeStr := Classify(price)
		if label != LabelInvalidProbability {
			t.Errorf("Classify(%v) label = %q, want %q", price, label, LabelInvalidProbability)
		}
		if rangeStr != "N/A" {
			t.Errorf("Classify(%v) range = %q, want %q", price, rangeStr, "N/A")
		}
	}
}

func TestColorScale_InSyncWithBands(t *testing.T) {
	if len(colorScale) != len(bands) {
		t.Fatalf("colorScale has %d entries, bands has %d", len(colorScale), len(bands))
	}

	for i, b := range bands {
		cb := colorScale[i]
		if cb.Low != b.Low || cb.High != b.High {
			t.Errorf("colorScale[%d] range = %d-%d, bands[%d] range = %d-%d",
				i, cb.Low, cb.High, i, b.Low, b.High)
		}

		// Both bounds of a band must resolve to that band's color.
		if got := ColorFor(b.Low); got != cb.Color {
			t.Errorf("ColorFor(%d) = %q, want %q", b.Low, got, cb.Color)
		}
		if got := ColorFor(b.High); got != cb.Color {
			t.Errorf("ColorFor(%d) = %q, want %q", b.High, got, cb.Color)
		}
	}
}

func TestColorFor_GapUsesDefault(t *testing.T) {
	if got := ColorFor(35); got != defaultColor {
		t.Errorf("ColorFor(35) = %q, want default %q", got, defaultColor)
	}
	if got := ColorFor(-1); got != defaultColor {
		t.Errorf("ColorFor(-1) = %q, want default %q", got, defaultColor)
	}
}

func TestBands_ReturnsCopy(t *testing.T) {
	b := Bands()
	if len(b) != len(bands) {
		t.Fatalf("Bands() returned %d entries, want %d", len(b), len(bands))
	}
	b[0].Label = "mutated"
	if bands[0].Label == "mutated" {
		t.Error("mutating Bands() result changed the internal table")
	}
}
