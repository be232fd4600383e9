package breakeven

import (
	"math"

	"github.com/cupnomics/breakeven/internal/money"
)

const (
	defaultDaysOpen          = 26
	defaultDepreciationYears = 4
)

// Calculate derives the full Metrics for one scenario. It is pure and total:
// malformed or missing text degrades through parser fallbacks and clamps, so
// no input can make it fail. Calling it twice on the same input yields
// identical results.
func Calculate(in ScenarioInput) Metrics {
	price := money.ParseAmount(in.Price, 0)
	cupsPerDay := money.ParseAmount(in.CupsPerDay, 0)
	// Days divides revenue and break-even later, so it is clamped to at
	// least one open day.
	days := clampMinInt(money.ParseAmount(in.DaysOpenPerMonth, defaultDaysOpen), 1)

	material := ResolveMaterialCost(in)
	packaging := money.ParseAmount(in.PackagingPerCup, 0)
	appFee := money.ParseFraction(in.AppFeePercent, 0)

	rent := money.ParseAmount(in.Rent, 0)
	staff := money.ParseAmount(in.Staff, 0)
	utilities := money.ParseAmount(in.Utilities, 0)
	marketing := money.ParseAmount(in.Marketing, 0)
	otherFixed := money.ParseAmount(in.OtherFixed, 0)

	capex := money.ParseAmount(in.CapitalExpenditure, 0)
	depYears := clampMinInt(money.ParseAmount(in.DepreciationYears, defaultDepreciationYears), 1)
	taxRate := money.ParseFraction(in.TaxPercent, 0)

	variablePerCup := material.PerCup(price) + packaging + price*appFee
	contribution := price - variablePerCup

	cupsPerMonth := cupsPerDay * float64(days)
	revenue := price * cupsPerMonth
	variableTotal := variablePerCup * cupsPerMonth
	gross := revenue - variableTotal
	fixed := rent + staff + utilities + marketing + otherFixed
	operating := gross - fixed

	// Tax applies to profit only, never to a loss.
	tax := math.Max(0, operating) * taxRate
	net := operating - tax

	// Straight-line depreciation, reported but never subtracted from net.
	depreciation := capex / float64(depYears*12)

	breakEven := BreakEvenNotApplicable()
	if contribution > 0 {
		breakEven = BreakEvenAt(fixed / contribution / float64(days))
	}

	payback := PaybackNever()
	if net > 0 {
		payback = PaybackAfter(capex / net)
	}

	grossMargin, netMargin := 0.0, 0.0
	if revenue > 0 {
		grossMargin = gross / revenue
		netMargin = net / revenue
	}
	roi := 0.0
	if capex > 0 {
		roi = net * 12 / capex
	}

	return Metrics{
		Price:            price,
		CupsPerDay:       cupsPerDay,
		DaysOpenPerMonth: days,

		Revenue:           revenue,
		VariableCostTotal: variableTotal,
		GrossProfit:       gross,
		FixedCostTotal:    fixed,
		OperatingProfit:   operating,
		Tax:               tax,
		NetProfit:         net,

		VariableCostPerCup:  variablePerCup,
		ContributionPerCup:  contribution,
		MonthlyDepreciation: depreciation,
		BreakEvenCupsPerDay: breakEven,
		PaybackMonths:       payback,

		GrossMarginRatio: grossMargin,
		NetMarginRatio:   netMargin,
		AnnualizedROI:    roi,
	}
}

// clampMinInt truncates v to an integer and raises it to min if needed.
func clampMinInt(v float64, min int) int {
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(v)
	if n < min {
		return min
	}
	return n
}
