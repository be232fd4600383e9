package breakeven

import (
	"testing"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		lo, hi int
	}{
		{"dash", "80-300", 80, 300},
		{"comma", "120,240", 120, 240},
		{"spaces", "  80 - 300 ", 80, 300},
		{"swapped bounds normalized", "300-80", 80, 300},
		{"empty falls back", "", 50, 300},
		{"garbage falls back", "many-cups", 50, 300},
		{"single number falls back", "150", 50, 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := ParseRange(tc.text)
			if lo != tc.lo || hi != tc.hi {
				t.Fatalf("ParseRange(%q) = (%d, %d), want (%d, %d)", tc.text, lo, hi, tc.lo, tc.hi)
			}
		})
	}
}

func TestSensitivitySeries_EndpointsAndLength(t *testing.T) {
	series := SensitivitySeries(DefaultInput(), 80, 300, DefaultSensitivityPoints)

	if len(series) != DefaultSensitivityPoints {
		t.Fatalf("expected %d points, got %d", DefaultSensitivityPoints, len(series))
	}
	if series[0].CupsPerDay != 80 {
		t.Fatalf("first point at %v cups, want 80", series[0].CupsPerDay)
	}
	if series[len(series)-1].CupsPerDay != 300 {
		t.Fatalf("last point at %v cups, want 300", series[len(series)-1].CupsPerDay)
	}
}

func TestSensitivitySeries_CrossesZeroNearBreakEven(t *testing.T) {
	in := DefaultInput()
	m := Calculate(in)
	bep, ok := m.BreakEvenCupsPerDay.UnitsPerDay()
	if !ok {
		t.Fatalf("sample scenario should have a finite break-even")
	}

	series := SensitivitySeries(in, 80, 300, 200)
	for _, p := range series {
		if p.CupsPerDay < bep-1e-9 && p.NetProfit > 0 {
			t.Fatalf("net profit positive below break-even: %+v (bep=%v)", p, bep)
		}
		if p.CupsPerDay > bep+1e-9 && p.NetProfit <= 0 {
			t.Fatalf("net profit non-positive above break-even: %+v (bep=%v)", p, bep)
		}
	}
}

func TestSensitivitySeries_TaxOnlyAboveBreakEven(t *testing.T) {
	in := DefaultInput()
	in.TaxPercent = "20"

	taxed := SensitivitySeries(in, 80, 300, 45)
	in.TaxPercent = "0"
	untaxed := SensitivitySeries(in, 80, 300, 45)

	for i := range taxed {
		if untaxed[i].NetProfit <= 0 {
			nearlyEqual(t, "net profit below break-even is untaxed", taxed[i].NetProfit, untaxed[i].NetProfit)
			continue
		}
		nearlyEqual(t, "net profit above break-even is taxed", taxed[i].NetProfit, untaxed[i].NetProfit*0.8)
	}
}

func TestSensitivitySeries_MatchesCalculatorAtActualVolume(t *testing.T) {
	in := DefaultInput() // cups 180, so sweep 180..180 hits the actual volume
	m := Calculate(in)

	series := SensitivitySeries(in, 180, 180, 2)
	nearlyEqual(t, "series at actual volume", series[0].NetProfit, m.NetProfit)
	nearlyEqual(t, "series at actual volume (end)", series[1].NetProfit, m.NetProfit)
}

func TestSensitivitySeries_MinimumTwoPoints(t *testing.T) {
	series := SensitivitySeries(DefaultInput(), 100, 200, 0)
	if len(series) != 2 {
		t.Fatalf("expected a clamped 2-point series, got %d points", len(series))
	}
}

func TestWaterfallItems(t *testing.T) {
	m := Calculate(DefaultInput())
	items := WaterfallItems(m)

	if len(items) != 4 {
		t.Fatalf("expected 4 waterfall bars, got %d", len(items))
	}
	nearlyEqual(t, "revenue bar", items[0].Value, m.Revenue)
	nearlyEqual(t, "variable bar", items[1].Value, -m.VariableCostTotal)
	nearlyEqual(t, "fixed bar", items[2].Value, -m.FixedCostTotal)
	nearlyEqual(t, "net bar", items[3].Value, m.NetProfit)
	if items[3].Total != true || items[0].Total {
		t.Fatalf("only the net bar should be the closing total")
	}

	// The bars must reconcile: relative bars sum to the total bar.
	sum := items[0].Value + items[1].Value + items[2].Value
	nearlyEqual(t, "waterfall reconciliation", sum, items[3].Value)
}

func TestFixedCostBreakdown(t *testing.T) {
	in := DefaultInput()
	in.Rent = "฿35,000"

	slices := FixedCostBreakdown(in)
	if len(slices) != 5 {
		t.Fatalf("expected 5 slices, got %d", len(slices))
	}

	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	nearlyEqual(t, "breakdown total", total, Calculate(in).FixedCostTotal)
}
