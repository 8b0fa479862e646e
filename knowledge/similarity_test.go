package knowledge

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "obraz jest ciemny", "obraz jest ciemny", 1},
		{"both empty", "", "", 1},
		{"one empty", "obraz", "", 0},
		{"case insensitive", "OBRAZ", "obraz", 1},
		{"disjoint", "abc", "xyz", 0},
		{"half", "abcd", "abxy", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetricRange(t *testing.T) {
	a := "urządzenie nie włącza się"
	b := "urządzenie się nie uruchamia"
	got := Ratio(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("Ratio(%q, %q) = %v, want value in (0, 1)", a, b, got)
	}
}
