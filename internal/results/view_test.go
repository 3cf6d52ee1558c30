package results

import (
	"reflect"
	"testing"
	"time"

	"agriboost-backend/internal/session"
)

func newSessionStore() *session.Store {
	return session.NewStore(time.Hour)
}

func TestResolveMissingKeyIsEmpty(t *testing.T) {
	store := newSessionStore()

	view := Resolve(store, "sess-1")

	if view.State != StateEmpty {
		t.Fatalf("expected empty state, got %v", view.State)
	}
}

func TestResolveInvalidJSONIsEmpty(t *testing.T) {
	store := newSessionStore()
	store.Set("sess-1", session.KeyAnalysisResults, "{not json")

	view := Resolve(store, "sess-1")

	if view.State != StateEmpty {
		t.Fatalf("expected empty state for malformed payload, got %v", view.State)
	}
}

func TestResolvePartialPayload(t *testing.T) {
	store := newSessionStore()
	store.Set("sess-1", session.KeyAnalysisResults, `{"soil_report_data":{"pH":6.8}}`)

	view := Resolve(store, "sess-1")

	if view.State != StatePopulated {
		t.Fatalf("expected populated state, got %v", view.State)
	}
	if view.Soil.PH != "6.8" {
		t.Fatalf("expected pH 6.8, got %q", view.Soil.PH)
	}
	for name, got := range map[string]string{
		"nitrogen":       view.Soil.Nitrogen,
		"phosphorus":     view.Soil.Phosphorus,
		"potassium":      view.Soil.Potassium,
		"organic matter": view.Soil.OrganicMatter,
	} {
		if got != NotAvailable {
			t.Errorf("expected %s to be %q, got %q", name, NotAvailable, got)
		}
	}
}

func TestResolveFullPayloadVerbatim(t *testing.T) {
	store := newSessionStore()
	store.Set("sess-1", session.KeyAnalysisResults,
		`{"soil_report_data":{"pH":6.8,"Nitrogen (kg/ha)":120,"Phosphorus (kg/ha)":45,"Potassium (kg/ha)":200,"Organic Carbon (%)":0.6}}`)

	view := Resolve(store, "sess-1")

	if view.State != StatePopulated {
		t.Fatalf("expected populated state, got %v", view.State)
	}
	want := SoilRecord{
		PH:            "6.8",
		Nitrogen:      "120",
		Phosphorus:    "45",
		Potassium:     "200",
		OrganicMatter: "0.6",

		PHStatus:            view.Soil.PHStatus,
		NitrogenStatus:      view.Soil.NitrogenStatus,
		PhosphorusStatus:    view.Soil.PhosphorusStatus,
		PotassiumStatus:     view.Soil.PotassiumStatus,
		OrganicMatterStatus: view.Soil.OrganicMatterStatus,
	}
	if view.Soil != want {
		t.Fatalf("derived record mismatch:\n got  %+v\n want %+v", view.Soil, want)
	}
}

func TestRecommendationsConstantAcrossPayloads(t *testing.T) {
	store := newSessionStore()

	store.Set("sess-1", session.KeyAnalysisResults, `{"soil_report_data":{"pH":4.2}}`)
	first := Resolve(store, "sess-1")

	store.Set("sess-1", session.KeyAnalysisResults,
		`{"soil_report_data":{"pH":8.9,"Nitrogen (kg/ha)":500}}`)
	second := Resolve(store, "sess-1")

	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Fatal("recommendations must not vary with payload content")
	}
	if !reflect.DeepEqual(first.Recommendations, Recommendations()) {
		t.Fatal("resolved recommendations differ from the static bundle")
	}
}

func TestZeroViewIsLoading(t *testing.T) {
	var view View
	if view.State != StateLoading {
		t.Fatalf("zero view should be loading, got %v", view.State)
	}
	if view.State.String() != "loading" {
		t.Fatalf("unexpected state name %q", view.State.String())
	}
}
