package domain

import "testing"

func TestImpactFromSentiment(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		want      Impact
	}{
		{"positive", 0.25, ImpactPositive},
		{"negative", -0.30, ImpactNegative},
		{"zero is neutral", 0.0, ImpactNeutral},
		{"small positive", 0.0001, ImpactPositive},
		{"small negative", -0.0001, ImpactNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImpactFromSentiment(tt.sentiment); got != tt.want {
				t.Errorf("ImpactFromSentiment(%v) = %s, want %s", tt.sentiment, got, tt.want)
			}
		})
	}
}
