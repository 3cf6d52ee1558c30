package analyses

import (
	"time"

	"agriboost-backend/internal/soil"
	"agriboost-backend/internal/vision"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// LocationLandDetails describes where the farm is and how big it is.
type LocationLandDetails struct {
	VillageCity   string  `json:"village_city"`
	State         string  `json:"state"`
	LandSizeAcres float64 `json:"land_size_acres"`
	SoilType      string  `json:"soil_type"`
}

// CropInformation describes what the farmer grows and targets.
type CropInformation struct {
	CropType                     string   `json:"crop_type"`
	PreviousYieldQuintalsPerAcre *float64 `json:"previous_yield_quintals_per_acre"`
	TargetYieldQuintalsPerAcre   float64  `json:"target_yield_quintals_per_acre"`
	BudgetRs                     int64    `json:"budget_rs"`
}

// FarmingPractices describes irrigation, fertilizer use and pest pressure.
type FarmingPractices struct {
	IrrigationMethod  string  `json:"irrigation_method"`
	FertilizerUse     string  `json:"fertilizer_use"`
	CurrentPestIssues *string `json:"current_pest_issues"`
}

// FormData groups the farm questionnaire the analyze endpoint accepts.
type FormData struct {
	LocationLandDetails LocationLandDetails `json:"location_land_details"`
	CropInformation     CropInformation     `json:"crop_information"`
	FarmingPractices    FarmingPractices    `json:"farming_practices"`
}

// CombinedResult is the payload written into the session under the
// analysisResults key and returned from the analyze endpoint. Its field
// names are the wire contract with the result view.
type CombinedResult struct {
	FormData             FormData       `json:"form_data"`
	SoilReportData       soil.Metrics   `json:"soil_report_data"`
	ImageAnalysisResults *vision.Result `json:"image_analysis_results"`
}

// Analysis is the persisted record of one analyze-farm-data run.
type Analysis struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Status         string         `json:"status"`
	Form           FormData       `json:"formData"`
	SoilReportData soil.Metrics   `json:"soilReportData"`
	ImageAnalysis  *vision.Result `json:"imageAnalysis,omitempty"`
	SoilReportKey  string         `json:"-"`
	CropImageKey   string         `json:"-"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
}
