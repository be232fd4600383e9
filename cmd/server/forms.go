package main

import (
	"net/url"

	"github.com/cupnomics/breakeven/internal/breakeven"
)

// scenarioFromForm overlays posted field values onto base. Fields absent from
// the form keep their current text; present fields take the raw text exactly
// as typed. Nothing is validated here: any text is legal input and the
// calculator degrades it to defaults if unreadable.
func scenarioFromForm(form url.Values, base breakeven.ScenarioInput) breakeven.ScenarioInput {
	for _, key := range breakeven.FieldKeys() {
		if form.Has(key) {
			base.SetField(key, form.Get(key))
		}
	}
	return base
}

// queryHasScenario reports whether values carry at least one permalink field,
// meaning the URL encodes a shared analysis that should override stored
// session state.
func queryHasScenario(values url.Values) bool {
	for _, id := range breakeven.CaseIDs {
		for _, key := range breakeven.FieldKeys() {
			if values.Has(key + string(id)) {
				return true
			}
		}
	}
	return false
}
