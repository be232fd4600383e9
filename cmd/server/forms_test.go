package main

import (
	"net/url"
	"testing"

	"github.com/cupnomics/breakeven/internal/breakeven"
)

func TestScenarioFromForm_OverlaysOnlyPresentFields(t *testing.T) {
	form := url.Values{}
	form.Set("price", "฿89")
	form.Set("tax_percent", "20%")

	got := scenarioFromForm(form, breakeven.DefaultInput())

	if got.Price != "฿89" {
		t.Fatalf("price = %q, want %q", got.Price, "฿89")
	}
	if got.TaxPercent != "20%" {
		t.Fatalf("tax = %q, want %q", got.TaxPercent, "20%")
	}
	if got.Rent != breakeven.DefaultInput().Rent {
		t.Fatalf("rent should keep its base value, got %q", got.Rent)
	}
}

func TestScenarioFromForm_PresentBlankBeatsBase(t *testing.T) {
	// Clearing the material amount field switches the cost basis to the
	// percent field, so a posted blank must not be confused with absence.
	form := url.Values{}
	form.Set("cogs_per_cup_amount", "")

	got := scenarioFromForm(form, breakeven.DefaultInput())
	if got.COGSPerCupAmount != "" {
		t.Fatalf("blank material amount should overwrite the base, got %q", got.COGSPerCupAmount)
	}
}

func TestScenarioFromForm_AcceptsAnyText(t *testing.T) {
	form := url.Values{}
	for _, key := range breakeven.FieldKeys() {
		form.Set(key, "!!! not a number !!!")
	}

	got := scenarioFromForm(form, breakeven.DefaultInput())

	// Free text is always accepted; degradation happens in the calculator.
	if got.Price != "!!! not a number !!!" {
		t.Fatalf("raw text should be stored untouched, got %q", got.Price)
	}
	m := breakeven.Calculate(got)
	if m.Revenue != 0 {
		t.Fatalf("garbage input should degrade to zero revenue, got %v", m.Revenue)
	}
}

func TestQueryHasScenario(t *testing.T) {
	if queryHasScenario(url.Values{}) {
		t.Fatalf("empty query should not look like a permalink")
	}

	unrelated := url.Values{}
	unrelated.Set("success", "copied")
	if queryHasScenario(unrelated) {
		t.Fatalf("unrelated params should not look like a permalink")
	}

	link := url.Values{}
	link.Set("priceB", "80")
	if !queryHasScenario(link) {
		t.Fatalf("a case field should mark the query as a permalink")
	}
}
