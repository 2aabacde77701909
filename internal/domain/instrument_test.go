package domain

import "testing"

func TestInstrument_Trend(t *testing.T) {
	tests := []struct {
		name     string
		quote    float64
		previous float64
		want     Trend
	}{
		{"up", 105.0, 100.0, TrendUp},
		{"down", 95.0, 100.0, TrendDown},
		{"flat", 100.0, 100.0, TrendFlat},
		{"tiny move up", 100.0000001, 100.0, TrendUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &Instrument{Quote: tt.quote, PreviousQuote: tt.previous}
			if got := i.Trend(); got != tt.want {
				t.Errorf("Trend() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClampFloor(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"above floor", 100.0, 100.0},
		{"at floor", 5.0, 5.0},
		{"below floor", 4.99, 5.0},
		{"negative", -10.0, 5.0},
		{"zero", 0.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFloor(tt.price); got != tt.want {
				t.Errorf("ClampFloor(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}
