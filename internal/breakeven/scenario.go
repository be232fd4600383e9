// Package breakeven derives monthly profit, break-even volume, and payback
// figures for a small food-service business from free-text assumptions.
//
// Every input field is a raw string exactly as the user typed it; parsing is
// tolerant and never fails. Deriving metrics is a pure function of one
// ScenarioInput, recomputed in full on every call with no state in between.
package breakeven

import (
	"strings"

	"github.com/cupnomics/breakeven/internal/money"
)

// CaseID names one of the three parallel scenarios.
type CaseID string

const (
	CaseA CaseID = "A"
	CaseB CaseID = "B"
	CaseC CaseID = "C"
)

// CaseIDs lists the scenarios in display order.
var CaseIDs = []CaseID{CaseA, CaseB, CaseC}

// ValidCaseID reports whether s names a known case.
func ValidCaseID(s string) (CaseID, bool) {
	for _, id := range CaseIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// ScenarioInput holds the raw text of every assumption field for one case.
// Fields keep whatever the user typed ("฿75,000", "40%", "(500)"); nothing is
// normalized until calculation time.
type ScenarioInput struct {
	Price              string `json:"price"`
	CupsPerDay         string `json:"cups_per_day"`
	DaysOpenPerMonth   string `json:"days_open_per_month"`
	COGSPerCupAmount   string `json:"cogs_per_cup_amount"`
	COGSPercentOfPrice string `json:"cogs_percent_of_price"`
	PackagingPerCup    string `json:"packaging_per_cup"`
	AppFeePercent      string `json:"app_fee_percent"`
	Rent               string `json:"rent"`
	Staff              string `json:"staff"`
	Utilities          string `json:"utilities"`
	Marketing          string `json:"marketing"`
	OtherFixed         string `json:"other_fixed"`
	CapitalExpenditure string `json:"capital_expenditure"`
	DepreciationYears  string `json:"depreciation_years"`
	TaxPercent         string `json:"tax_percent"`
}

// fieldKeys lists the canonical field names in form/permalink order.
var fieldKeys = []string{
	"price",
	"cups_per_day",
	"days_open_per_month",
	"cogs_per_cup_amount",
	"cogs_percent_of_price",
	"packaging_per_cup",
	"app_fee_percent",
	"rent",
	"staff",
	"utilities",
	"marketing",
	"other_fixed",
	"capital_expenditure",
	"depreciation_years",
	"tax_percent",
}

// FieldKeys returns the canonical field names in a stable order.
func FieldKeys() []string {
	keys := make([]string, len(fieldKeys))
	copy(keys, fieldKeys)
	return keys
}

// DefaultInput returns a ScenarioInput populated with the sample coffee-shop
// assumptions every case starts from.
func DefaultInput() ScenarioInput {
	return ScenarioInput{
		Price:              "75",
		CupsPerDay:         "180",
		DaysOpenPerMonth:   "26",
		COGSPerCupAmount:   "28",
		COGSPercentOfPrice: "0",
		PackagingPerCup:    "2",
		AppFeePercent:      "0",
		Rent:               "35000",
		Staff:              "70000",
		Utilities:          "12000",
		Marketing:          "8000",
		OtherFixed:         "5000",
		CapitalExpenditure: "280000",
		DepreciationYears:  "4",
		TaxPercent:         "0",
	}
}

// Field returns the raw text of the field named by key, or "" for an unknown
// key.
func (in ScenarioInput) Field(key string) string {
	switch key {
	case "price":
		return in.Price
	case "cups_per_day":
		return in.CupsPerDay
	case "days_open_per_month":
		return in.DaysOpenPerMonth
	case "cogs_per_cup_amount":
		return in.COGSPerCupAmount
	case "cogs_percent_of_price":
		return in.COGSPercentOfPrice
	case "packaging_per_cup":
		return in.PackagingPerCup
	case "app_fee_percent":
		return in.AppFeePercent
	case "rent":
		return in.Rent
	case "staff":
		return in.Staff
	case "utilities":
		return in.Utilities
	case "marketing":
		return in.Marketing
	case "other_fixed":
		return in.OtherFixed
	case "capital_expenditure":
		return in.CapitalExpenditure
	case "depreciation_years":
		return in.DepreciationYears
	case "tax_percent":
		return in.TaxPercent
	}
	return ""
}

// SetField stores raw text under the field named by key and reports whether
// the key was recognized.
func (in *ScenarioInput) SetField(key, value string) bool {
	switch key {
	case "price":
		in.Price = value
	case "cups_per_day":
		in.CupsPerDay = value
	case "days_open_per_month":
		in.DaysOpenPerMonth = value
	case "cogs_per_cup_amount":
		in.COGSPerCupAmount = value
	case "cogs_percent_of_price":
		in.COGSPercentOfPrice = value
	case "packaging_per_cup":
		in.PackagingPerCup = value
	case "app_fee_percent":
		in.AppFeePercent = value
	case "rent":
		in.Rent = value
	case "staff":
		in.Staff = value
	case "utilities":
		in.Utilities = value
	case "marketing":
		in.Marketing = value
	case "other_fixed":
		in.OtherFixed = value
	case "capital_expenditure":
		in.CapitalExpenditure = value
	case "depreciation_years":
		in.DepreciationYears = value
	case "tax_percent":
		in.TaxPercent = value
	default:
		return false
	}
	return true
}

// CaseSet maps every case to its current input. The owner (the host
// application) holds and mutates it; the calculator only ever reads one
// ScenarioInput at a time.
type CaseSet map[CaseID]ScenarioInput

// DefaultCaseSet returns all three cases populated with the sample defaults.
func DefaultCaseSet() CaseSet {
	cs := make(CaseSet, len(CaseIDs))
	for _, id := range CaseIDs {
		cs[id] = DefaultInput()
	}
	return cs
}

// Copy overwrites the target case with a full copy of the source case.
func (cs CaseSet) Copy(from, to CaseID) {
	cs[to] = cs[from]
}

// MaterialCostBasis says how the per-cup material cost is resolved.
type MaterialCostBasis int

const (
	// MaterialCostExplicit uses the amount typed into the per-cup field.
	MaterialCostExplicit MaterialCostBasis = iota
	// MaterialCostPercentOfPrice derives the cost as a fraction of the price.
	MaterialCostPercentOfPrice
)

// MaterialCost is the tagged choice between an explicit per-cup amount and a
// percent-of-price rule. The choice is made from the raw text of the amount
// field: any non-blank entry wins, including an explicit "0".
type MaterialCost struct {
	Basis    MaterialCostBasis
	Amount   float64 // per-cup amount when Basis is MaterialCostExplicit
	Fraction float64 // fraction of price when Basis is MaterialCostPercentOfPrice
}

// ResolveMaterialCost picks the material-cost basis for in.
func ResolveMaterialCost(in ScenarioInput) MaterialCost {
	if strings.TrimSpace(in.COGSPerCupAmount) != "" {
		return MaterialCost{
			Basis:  MaterialCostExplicit,
			Amount: money.ParseAmount(in.COGSPerCupAmount, 0),
		}
	}
	return MaterialCost{
		Basis:    MaterialCostPercentOfPrice,
		Fraction: money.ParseFraction(in.COGSPercentOfPrice, 0),
	}
}

// PerCup returns the material cost per cup at the given price.
func (m MaterialCost) PerCup(price float64) float64 {
	if m.Basis == MaterialCostExplicit {
		return m.Amount
	}
	return price * m.Fraction
}
