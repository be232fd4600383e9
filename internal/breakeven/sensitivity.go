package breakeven

import (
	"math"
	"regexp"

	"github.com/cupnomics/breakeven/internal/money"
)

// DefaultSensitivityPoints is the number of samples in a sensitivity sweep.
const DefaultSensitivityPoints = 25

var rangePattern = regexp.MustCompile(`^\s*(\d+)\s*[-,]\s*(\d+)\s*$`)

// ParseRange reads a volume range like "80-300" or "120,240". Swapped bounds
// are normalized; anything unreadable yields the default range 50-300.
func ParseRange(text string) (lo, hi int) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return 50, 300
	}
	lo = atoiDigits(m[1])
	hi = atoiDigits(m[2])
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// atoiDigits converts a digit-only string, saturating instead of overflowing.
func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > math.MaxInt32 {
			return math.MaxInt32
		}
	}
	return n
}

// SensitivityPoint is one sample of net profit at a hypothetical daily
// volume.
type SensitivityPoint struct {
	CupsPerDay float64 `json:"cups_per_day"`
	NetProfit  float64 `json:"net_profit"`
}

// SensitivitySeries sweeps cups per day across [lo, hi] while holding every
// other assumption of in fixed, and returns net profit at each sample. The
// tax-only-on-profit rule is re-applied at every point, so the series bends
// where operating profit crosses zero.
func SensitivitySeries(in ScenarioInput, lo, hi, points int) []SensitivityPoint {
	if points < 2 {
		points = 2
	}
	base := Calculate(in)
	taxRate := money.ParseFraction(in.TaxPercent, 0)
	days := float64(base.DaysOpenPerMonth)

	series := make([]SensitivityPoint, 0, points)
	span := float64(hi - lo)
	for i := 0; i < points; i++ {
		cups := float64(lo) + span*float64(i)/float64(points-1)
		revenue := base.Price * cups * days
		variable := base.VariableCostPerCup * cups * days
		operating := revenue - variable - base.FixedCostTotal
		tax := math.Max(0, operating) * taxRate
		series = append(series, SensitivityPoint{
			CupsPerDay: cups,
			NetProfit:  operating - tax,
		})
	}
	return series
}

// WaterfallItem is one bar of the revenue-to-net-profit waterfall. Total
// marks the closing bar.
type WaterfallItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Total bool    `json:"total"`
}

// WaterfallItems lays out revenue, cost deductions, and net profit as
// waterfall bars. Rendering is up to the consumer.
func WaterfallItems(m Metrics) []WaterfallItem {
	return []WaterfallItem{
		{Label: "Revenue", Value: m.Revenue},
		{Label: "Variable costs", Value: -m.VariableCostTotal},
		{Label: "Fixed costs", Value: -m.FixedCostTotal},
		{Label: "Net profit", Value: m.NetProfit, Total: true},
	}
}

// CostSlice is one labeled share of the fixed-cost breakdown.
type CostSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// FixedCostBreakdown returns the monthly fixed costs of in as labeled slices
// for a pie-style breakdown.
func FixedCostBreakdown(in ScenarioInput) []CostSlice {
	return []CostSlice{
		{Label: "Rent", Value: money.ParseAmount(in.Rent, 0)},
		{Label: "Staff", Value: money.ParseAmount(in.Staff, 0)},
		{Label: "Utilities", Value: money.ParseAmount(in.Utilities, 0)},
		{Label: "Marketing", Value: money.ParseAmount(in.Marketing, 0)},
		{Label: "Other", Value: money.ParseAmount(in.OtherFixed, 0)},
	}
}
