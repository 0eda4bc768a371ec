// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dump

import (
	"strings"

	"github.com/pdiddy/gnd-harvest/pkg/types"
)

const listSeparator = "|"

// FlipName turns an inverted "Family, Given" name into "Given Family".
// Only the first comma splits; both parts are trimmed. A name without a
// comma is returned trimmed.
func FlipName(name string) string {
	family, given, ok := strings.Cut(name, ",")
	if !ok {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(given) + " " + strings.TrimSpace(family)
}

// JoinNonEmpty joins the non-empty values with "|".
func JoinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, listSeparator)
}

// ListToString renders a field as a single CSV cell: a list becomes the
// "|"-join of its non-empty elements, any other non-empty value its string
// form, and an absent or empty value "".
func ListToString(f types.Field) string {
	switch f.Kind() {
	case types.FieldList:
		parts := make([]string, 0, len(f.Items()))
		for _, item := range f.Items() {
			if item.Truthy() {
				parts = append(parts, item.String())
			}
		}
		return strings.Join(parts, listSeparator)
	default:
		if f.Truthy() {
			return f.String()
		}
		return ""
	}
}

// nameVariants returns every variant name followed by the preferred name,
// each flipped into reading order.
func nameVariants(rec types.Record) string {
	flipped := make([]string, 0, len(rec.VariantNames)+1)
	for _, v := range rec.VariantNames {
		if v != "" {
			flipped = append(flipped, FlipName(v))
		}
	}
	if rec.PreferredName.Truthy() {
		flipped = append(flipped, FlipName(rec.PreferredName.String()))
	}
	return strings.Join(flipped, listSeparator)
}
