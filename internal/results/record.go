package results

import (
	"strconv"

	"agriboost-backend/internal/soil"
)

// NotAvailable is the sentinel shown for any soil metric the analysis
// payload does not carry.
const NotAvailable = "not available"

// Status tiers are constant literals for now. Threshold based
// classification is pending backend work; see DESIGN.md.
const (
	tierPH            = "optimal"
	tierNitrogen      = "medium"
	tierPhosphorus    = "low"
	tierPotassium     = "high"
	tierOrganicMatter = "adequate"
)

// SoilRecord is the display record derived from an analysis payload. Each
// value field holds the source value verbatim or NotAvailable. It is
// recomputed on every request and never mutated in place.
type SoilRecord struct {
	PH            string `json:"ph"`
	Nitrogen      string `json:"nitrogen"`
	Phosphorus    string `json:"phosphorus"`
	Potassium     string `json:"potassium"`
	OrganicMatter string `json:"organicMatter"`

	PHStatus            string `json:"phStatus"`
	NitrogenStatus      string `json:"nitrogenStatus"`
	PhosphorusStatus    string `json:"phosphorusStatus"`
	PotassiumStatus     string `json:"potassiumStatus"`
	OrganicMatterStatus string `json:"organicMatterStatus"`
}

// DeriveSoilRecord maps the soil_report_data section of a payload into a
// SoilRecord. Absent or non-scalar fields degrade to NotAvailable; the
// record never fails to derive.
func DeriveSoilRecord(data map[string]any) SoilRecord {
	return SoilRecord{
		PH:            displayValue(data, soil.KeyPH),
		Nitrogen:      displayValue(data, soil.KeyNitrogen),
		Phosphorus:    displayValue(data, soil.KeyPhosphorus),
		Potassium:     displayValue(data, soil.KeyPotassium),
		OrganicMatter: displayValue(data, soil.KeyOrganicCarbon),

		PHStatus:            tierPH,
		NitrogenStatus:      tierNitrogen,
		PhosphorusStatus:    tierPhosphorus,
		PotassiumStatus:     tierPotassium,
		OrganicMatterStatus: tierOrganicMatter,
	}
}

func displayValue(data map[string]any, key string) string {
	raw, ok := data[key]
	if !ok || raw == nil {
		return NotAvailable
	}
	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v == "" {
			return NotAvailable
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return NotAvailable
	}
}
