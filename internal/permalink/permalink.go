// Package permalink serializes a full set of scenario inputs into URL query
// parameters and back, so an analysis can be shared as a link.
//
// Keys are the canonical field name suffixed with the case id ("priceA"),
// carrying the raw text exactly as typed; an "active" key records the case
// selected for the detail panels. Decoding is tolerant: missing fields fall
// back to their defaults and unknown keys are ignored.
package permalink

import (
	"net/url"

	"github.com/cupnomics/breakeven/internal/breakeven"
)

const activeKey = "active"

// Encode flattens cases plus the active case id into query values. Every
// field of every case is written, defaults included, so the link is
// self-contained.
func Encode(cases breakeven.CaseSet, active breakeven.CaseID) url.Values {
	values := url.Values{}
	for _, id := range breakeven.CaseIDs {
		in, ok := cases[id]
		if !ok {
			in = breakeven.DefaultInput()
		}
		for _, key := range breakeven.FieldKeys() {
			values.Set(key+string(id), in.Field(key))
		}
	}
	values.Set(activeKey, string(active))
	return values
}

// Decode rebuilds a case set from query values. Cases with no keys present
// at all are omitted from the result; present cases start from the defaults
// and take whatever raw text the link carries. The second return is the
// active case, falling back to case A when absent or unknown.
func Decode(values url.Values) (breakeven.CaseSet, breakeven.CaseID) {
	cases := make(breakeven.CaseSet)
	for _, id := range breakeven.CaseIDs {
		in := breakeven.DefaultInput()
		present := false
		for _, key := range breakeven.FieldKeys() {
			if !values.Has(key + string(id)) {
				continue
			}
			in.SetField(key, values.Get(key+string(id)))
			present = true
		}
		if present {
			cases[id] = in
		}
	}

	active, ok := breakeven.ValidCaseID(values.Get(activeKey))
	if !ok {
		active = breakeven.CaseA
	}
	return cases, active
}
