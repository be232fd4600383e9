package permalink

import (
	"net/url"
	"testing"

	"github.com/cupnomics/breakeven/internal/breakeven"
)

func TestEncodeDecodeRoundTripPreservesRawText(t *testing.T) {
	cases := breakeven.DefaultCaseSet()
	a := cases[breakeven.CaseA]
	a.Price = "฿89"
	a.Rent = "(1,500)"
	a.TaxPercent = "20%"
	a.COGSPerCupAmount = "" // blank must survive as blank, it changes semantics
	cases[breakeven.CaseA] = a

	values := Encode(cases, breakeven.CaseB)
	decoded, active := Decode(values)

	if active != breakeven.CaseB {
		t.Fatalf("active case = %q, want B", active)
	}
	for _, id := range breakeven.CaseIDs {
		for _, key := range breakeven.FieldKeys() {
			got := decoded[id].Field(key)
			want := cases[id].Field(key)
			if got != want {
				t.Fatalf("case %s field %s = %q, want %q", id, key, got, want)
			}
		}
	}
}

func TestEncodeDecodeSurvivesQueryStringSerialization(t *testing.T) {
	cases := breakeven.DefaultCaseSet()
	a := cases[breakeven.CaseA]
	a.Price = "฿75,000"
	cases[breakeven.CaseA] = a

	raw := Encode(cases, breakeven.CaseA).Encode()
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	decoded, _ := Decode(parsed)
	if got := decoded[breakeven.CaseA].Price; got != "฿75,000" {
		t.Fatalf("price after query round-trip = %q, want %q", got, "฿75,000")
	}
}

func TestDecodeMissingFieldsFallBackToDefaults(t *testing.T) {
	values := url.Values{}
	values.Set("priceA", "99")

	decoded, active := Decode(values)

	if active != breakeven.CaseA {
		t.Fatalf("active case = %q, want fallback A", active)
	}
	if got := decoded[breakeven.CaseA].Price; got != "99" {
		t.Fatalf("price = %q, want 99", got)
	}
	if got := decoded[breakeven.CaseA].Rent; got != breakeven.DefaultInput().Rent {
		t.Fatalf("rent = %q, want default %q", got, breakeven.DefaultInput().Rent)
	}
	if _, ok := decoded[breakeven.CaseB]; ok {
		t.Fatalf("case B had no keys and should be omitted")
	}
}

func TestDecodeRejectsUnknownActiveCase(t *testing.T) {
	values := url.Values{}
	values.Set("active", "Z")

	_, active := Decode(values)
	if active != breakeven.CaseA {
		t.Fatalf("active case = %q, want fallback A", active)
	}
}

func TestDecodeCalculatesSameMetricsAsSource(t *testing.T) {
	cases := breakeven.DefaultCaseSet()
	b := cases[breakeven.CaseB]
	b.CupsPerDay = "240"
	b.AppFeePercent = "30%"
	cases[breakeven.CaseB] = b

	decoded, _ := Decode(Encode(cases, breakeven.CaseA))

	for _, id := range breakeven.CaseIDs {
		if breakeven.Calculate(decoded[id]) != breakeven.Calculate(cases[id]) {
			t.Fatalf("case %s metrics differ after permalink round-trip", id)
		}
	}
}
