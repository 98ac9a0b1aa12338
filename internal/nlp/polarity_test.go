package nlp

import "testing"

func TestPolarity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		min   float64
		max   float64
	}{
		{"positive", "great service", 0.5, 1},
		{"strong positive", "excellent and helpful staff", 0.3, 1},
		{"negative", "terrible experience, claim denied", -1, -0.5},
		{"negated positive", "not great at all", -1, -0.1},
		{"negated negative", "no errors this time", 0.1, 1},
		{"intensified", "very frustrating process", -1, -0.7},
		{"neutral text", "claim number 12345 cpt code 99213", 0, 0},
		{"empty", "", 0, 0},
		{"mixed", "great service but payment was denied", -0.2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polarity(tt.input)
			if got < tt.min || got > tt.max {
				t.Errorf("Polarity(%q) = %v, want in [%v, %v]", tt.input, got, tt.min, tt.max)
			}
		})
	}
}

func TestPolarity_Clamped(t *testing.T) {
	// Stacked intensifiers must not push the score outside [-1, 1].
	got := Polarity("absolutely completely terrible")
	if got < -1 || got > 1 {
		t.Errorf("Polarity out of range: %v", got)
	}
}

func TestPolarity_IndependentOfLabel(t *testing.T) {
	// Polarity runs on raw text; punctuation and negation words that the
	// normalizer strips must still influence it.
	plain := Polarity("the service was good")
	negated := Polarity("the service was not good")
	if !(negated < plain) {
		t.Errorf("Expected negation to lower polarity: plain %v, negated %v", plain, negated)
	}
}
