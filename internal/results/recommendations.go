package results

// FertilizerItem is one entry of the fertilizer plan.
type FertilizerItem struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Timing   string `json:"timing"`
	Priority string `json:"priority"`
}

// CropSuitability is one entry of the crop suitability list.
type CropSuitability struct {
	Name               string `json:"name"`
	SuitabilityPercent int    `json:"suitabilityPercent"`
	ExpectedYield      string `json:"expectedYield"`
}

// IrrigationPlan describes the single recommended irrigation schedule.
type IrrigationPlan struct {
	Method    string `json:"method"`
	Frequency string `json:"frequency"`
	Volume    string `json:"volume"`
}

// RecommendationBundle groups the recommendation sections shown beside the
// soil metrics.
type RecommendationBundle struct {
	Fertilizer []FertilizerItem  `json:"fertilizer"`
	Crops      []CropSuitability `json:"crops"`
	Irrigation IrrigationPlan    `json:"irrigation"`
}

// Recommendations returns the display bundle. The content is static
// placeholder data and is identical for every analysis; it is never derived
// from the payload. This is a known limitation, not a bug.
func Recommendations() RecommendationBundle {
	return RecommendationBundle{
		Fertilizer: []FertilizerItem{
			{Name: "Urea", Amount: "50 kg/acre", Timing: "Before sowing", Priority: "high"},
			{Name: "DAP", Amount: "25 kg/acre", Timing: "At sowing", Priority: "high"},
			{Name: "Potash (MOP)", Amount: "20 kg/acre", Timing: "30 days after sowing", Priority: "medium"},
			{Name: "Zinc Sulphate", Amount: "10 kg/acre", Timing: "With first irrigation", Priority: "low"},
		},
		Crops: []CropSuitability{
			{Name: "Wheat", SuitabilityPercent: 92, ExpectedYield: "18-22 quintals/acre"},
			{Name: "Mustard", SuitabilityPercent: 85, ExpectedYield: "8-10 quintals/acre"},
			{Name: "Chickpea", SuitabilityPercent: 78, ExpectedYield: "7-9 quintals/acre"},
		},
		Irrigation: IrrigationPlan{
			Method:    "Drip irrigation",
			Frequency: "Every 7-10 days",
			Volume:    "25 mm per irrigation",
		},
	}
}
