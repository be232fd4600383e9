package breakeven

import (
	"encoding/json"
	"fmt"
)

// BreakEven is the sales volume at which contribution covers fixed costs.
// When the contribution margin is zero or negative no volume can ever break
// even, and the value is "not applicable" instead of a number. The zero value
// is not applicable.
type BreakEven struct {
	unitsPerDay float64
	applicable  bool
}

// BreakEvenAt returns a finite break-even volume in units per day.
func BreakEvenAt(unitsPerDay float64) BreakEven {
	return BreakEven{unitsPerDay: unitsPerDay, applicable: true}
}

// BreakEvenNotApplicable returns the not-applicable sentinel.
func BreakEvenNotApplicable() BreakEven {
	return BreakEven{}
}

// UnitsPerDay returns the break-even volume and whether it is applicable.
func (b BreakEven) UnitsPerDay() (float64, bool) {
	return b.unitsPerDay, b.applicable
}

// Applicable reports whether a finite break-even volume exists.
func (b BreakEven) Applicable() bool {
	return b.applicable
}

func (b BreakEven) String() string {
	if !b.applicable {
		return "-"
	}
	return fmt.Sprintf("%.1f", b.unitsPerDay)
}

// MarshalJSON encodes a finite volume as a number and not-applicable as null,
// so consumers cannot mistake the sentinel for a real quantity.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.applicable {
		return []byte("null"), nil
	}
	return json.Marshal(b.unitsPerDay)
}

// UnmarshalJSON accepts a number or null.
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = BreakEvenNotApplicable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = BreakEvenAt(v)
	return nil
}

// Payback is the time to recoup capital expenditure. A business with zero or
// negative net profit never recoups it, so the value is "unbounded" instead
// of a number. The zero value is unbounded.
type Payback struct {
	months float64
	finite bool
}

// PaybackAfter returns a finite payback period in months.
func PaybackAfter(months float64) Payback {
	return Payback{months: months, finite: true}
}

// PaybackNever returns the unbounded sentinel.
func PaybackNever() Payback {
	return Payback{}
}

// Months returns the payback period and whether it is finite.
func (p Payback) Months() (float64, bool) {
	return p.months, p.finite
}

// Finite reports whether the capital is ever recouped.
func (p Payback) Finite() bool {
	return p.finite
}

func (p Payback) String() string {
	if !p.finite {
		return "∞"
	}
	return fmt.Sprintf("%.1f", p.months)
}

// MarshalJSON encodes a finite period as a number and unbounded as null.
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.finite {
		return []byte("null"), nil
	}
	return json.Marshal(p.months)
}

// UnmarshalJSON accepts a number or null.
func (p *Payback) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PaybackNever()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PaybackAfter(v)
	return nil
}

// Metrics is the fully derived monthly result for one scenario. It is a pure
// function of one ScenarioInput and is rebuilt from scratch on every
// evaluation.
//
// MonthlyDepreciation is informational only: it is reported but never
// subtracted anywhere in the profit chain, matching how the tool has always
// presented net profit.
type Metrics struct {
	Price            float64 `json:"price"`
	CupsPerDay       float64 `json:"cups_per_day"`
	DaysOpenPerMonth int     `json:"days_open_per_month"`

	Revenue           float64 `json:"revenue"`
	VariableCostTotal float64 `json:"variable_cost_total"`
	GrossProfit       float64 `json:"gross_profit"`
	FixedCostTotal    float64 `json:"fixed_cost_total"`
	OperatingProfit   float64 `json:"operating_profit"`
	Tax               float64 `json:"tax"`
	NetProfit         float64 `json:"net_profit"`

	VariableCostPerCup  float64   `json:"variable_cost_per_unit"`
	ContributionPerCup  float64   `json:"contribution_margin_per_unit"`
	MonthlyDepreciation float64   `json:"monthly_depreciation"`
	BreakEvenCupsPerDay BreakEven `json:"break_even_units_per_day"`
	PaybackMonths       Payback   `json:"payback_months"`

	GrossMarginRatio float64 `json:"gross_margin_ratio"`
	NetMarginRatio   float64 `json:"net_margin_ratio"`
	AnnualizedROI    float64 `json:"annualized_roi"`
}
