// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record holds the biographical metadata kept for one GND identifier.
// Field order matches the JSON dump.
type Record struct {
	// GNDID is the gndIdentifier reported by the API. It can differ from
	// the requested identifier when the authority redirects to a merged
	// record.
	GNDID Field `json:"gnd_id"`

	// PreferredName is the preferredName, usually "Family, Given".
	PreferredName Field `json:"preferred_name"`

	// VariantNames lists variantName labels in source order.
	VariantNames []string `json:"variant_names"`

	// DateOfBirth and DateOfDeath are copied verbatim; lobid does not
	// guarantee a date format or even a single value.
	DateOfBirth Field `json:"date_of_birth"`
	DateOfDeath Field `json:"date_of_death"`

	// Professions lists professionOrOccupation labels.
	Professions []string `json:"professions"`

	// PlacesOfBirth lists placeOfBirth labels.
	PlacesOfBirth []string `json:"places_of_birth"`
}
