package soil

import (
	"regexp"
	"strconv"
)

// Metric keys of the soil_report_data mapping. These exact names are the
// wire contract with the result view; renaming one silently degrades the
// corresponding display field to "not available".
const (
	KeyPH            = "pH"
	KeyNitrogen      = "Nitrogen (kg/ha)"
	KeyPhosphorus    = "Phosphorus (kg/ha)"
	KeyPotassium     = "Potassium (kg/ha)"
	KeyOrganicCarbon = "Organic Carbon (%)"
)

// Metrics maps metric keys to extracted values; nil means the value was not
// found in the report. All five keys are always present.
type Metrics map[string]*float64

var patterns = map[string]*regexp.Regexp{
	KeyPH:            regexp.MustCompile(`(?i)pH\s*[:\-–]?\s*(\d+\.?\d*)`),
	KeyOrganicCarbon: regexp.MustCompile(`(?i)Organic Carbon(?: \(OC\))?\s*[:\-–]?\s*(\d+\.?\d*)`),
	KeyNitrogen:      regexp.MustCompile(`(?i)Nitrogen \(N\)\s*[:\-–]?\s*(\d+\.?\d*)`),
	KeyPhosphorus:    regexp.MustCompile(`(?i)Phosphorus \(P\)\s*[:\-–]?\s*(\d+\.?\d*)`),
	KeyPotassium:     regexp.MustCompile(`(?i)Potassium \(K\)\s*[:\-–]?\s*(\d+\.?\d*)`),
}

// ParseReport scans extracted report text for the five soil parameters.
// Values that cannot be found stay nil; callers render those as
// "not available" rather than failing.
func ParseReport(text string) Metrics {
	out := Empty()
	if text == "" {
		return out
	}
	for key, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		val, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		out[key] = &val
	}
	return out
}

// Empty returns a Metrics with every key present and nil. Used when report
// parsing fails outright, mirroring the "all values unknown" degradation.
func Empty() Metrics {
	return Metrics{
		KeyPH:            nil,
		KeyNitrogen:      nil,
		KeyPhosphorus:    nil,
		KeyPotassium:     nil,
		KeyOrganicCarbon: nil,
	}
}

// Found reports how many metrics carry a value.
func (m Metrics) Found() int {
	n := 0
	for _, v := range m {
		if v != nil {
			n++
		}
	}
	return n
}
