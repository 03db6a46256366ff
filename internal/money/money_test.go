package money

import "testing"

func TestMulRatioRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name     string
		amount   Money
		num, den int64
		want     Money
	}{
		{"exact", 10000, 10, 100, 1000},
		{"half rounds up", 1250, 50, 1000, 63},
		{"just below half rounds down", 1249, 50, 1000, 62},
		{"fifteen percent bps", 156600, 1500, 10000, 23490},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MulRatio(tc.amount, tc.num, tc.den); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSubSaturatesAtZero(t *testing.T) {
	if got := Money(500).Sub(700); got != 0 {
		t.Fatalf("expected saturated zero, got %d", got)
	}
	if got := Money(700).Sub(500); got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}
}

func TestScaleKm(t *testing.T) {
	// 15 extra km at $3.00/km.
	if got := ScaleKm(300, 15); got != 4500 {
		t.Fatalf("expected 4500, got %d", got)
	}
	// Fractional distance rounds to the nearest cent.
	if got := ScaleKm(300, 0.5); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
	if got := ScaleKm(300, -3); got != 0 {
		t.Fatalf("expected 0 for negative distance, got %d", got)
	}
}

func TestDollars(t *testing.T) {
	if got := Money(180090).Dollars(); got != "$1800.90" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := Money(-17400).Dollars(); got != "-$174.00" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := Money(5).Dollars(); got != "$0.05" {
		t.Fatalf("unexpected format %q", got)
	}
}
