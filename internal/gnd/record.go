// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gnd

import "github.com/pdiddy/gnd-harvest/pkg/types"

// lobid GND payload keys read into a Record.
const (
	keyGNDIdentifier = "gndIdentifier"
	keyPreferredName = "preferredName"
	keyVariantName   = "variantName"
	keyDateOfBirth   = "dateOfBirth"
	keyDateOfDeath   = "dateOfDeath"
	keyProfession    = "professionOrOccupation"
	keyPlaceOfBirth  = "placeOfBirth"
)

// NormalizeRecord maps a decoded lobid GND payload onto a Record. The
// identifier, preferred name and dates are copied verbatim; the variant
// names, professions and places of birth are flattened to label lists.
// Missing keys produce absent fields and empty lists.
func NormalizeRecord(payload map[string]types.Field) types.Record {
	return types.Record{
		GNDID:         payload[keyGNDIdentifier],
		PreferredName: payload[keyPreferredName],
		VariantNames:  payload[keyVariantName].Labels(),
		DateOfBirth:   payload[keyDateOfBirth],
		DateOfDeath:   payload[keyDateOfDeath],
		Professions:   payload[keyProfession].Labels(),
		PlacesOfBirth: payload[keyPlaceOfBirth].Labels(),
	}
}
