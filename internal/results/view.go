package results

import (
	"encoding/json"

	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/metrics"
)

// State is the render state of the result view. The zero value is
// StateLoading so an unresolved View reads as still loading.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return "loading"
	}
}

// View is everything the result page needs for one render.
type View struct {
	State           State
	Soil            SoilRecord
	Recommendations RecommendationBundle
}

// Populated reports whether the view carries analysis data.
func (v View) Populated() bool {
	return v.State == StatePopulated
}

// payload mirrors the stored analysis result; only the soil section is
// read here, the rest of the object is ignored.
type payload struct {
	SoilReportData map[string]any `json:"soil_report_data"`
}

// Resolve reads the stored analysis result for the session and derives the
// view. A missing key and an unreadable payload are the same outcome: the
// empty state. Decode failures never propagate.
func Resolve(sessions *session.Store, sessionID string) View {
	raw, ok := sessions.Get(sessionID, session.KeyAnalysisResults)
	if !ok {
		metrics.IncResultsEmpty()
		return View{State: StateEmpty}
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		metrics.IncResultsEmpty()
		return View{State: StateEmpty}
	}

	metrics.IncResultsPopulated()
	return View{
		State:           StatePopulated,
		Soil:            DeriveSoilRecord(p.SoilReportData),
		Recommendations: Recommendations(),
	}
}
