package i18n

import "testing"

func TestLookupByDottedPath(t *testing.T) {
	bundle, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := bundle.T("en", "soilHealth.title"); got != "Soil Health" {
		t.Fatalf("expected 'Soil Health', got %q", got)
	}
	if got := bundle.T("en", "results.empty.action"); got != "Go to Upload" {
		t.Fatalf("expected 'Go to Upload', got %q", got)
	}
}

func TestMissingKeyFallsBackToKey(t *testing.T) {
	bundle, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := bundle.T("en", "soilHealth.noSuchKey"); got != "soilHealth.noSuchKey" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	// Non-leaf path is not a string and must not resolve.
	if got := bundle.T("en", "soilHealth"); got != "soilHealth" {
		t.Fatalf("expected key fallback for non-leaf, got %q", got)
	}
}

func TestUnknownLocaleFallsBackToDefault(t *testing.T) {
	bundle, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := bundle.T("fr", "soilHealth.ph"); got != "Soil pH" {
		t.Fatalf("expected default-locale value, got %q", got)
	}

	tr := bundle.Translator("fr")
	if got := tr("soilHealth.nitrogen"); got != "Nitrogen" {
		t.Fatalf("expected default-locale value via translator, got %q", got)
	}
}

func TestHindiCatalogLoads(t *testing.T) {
	bundle, err := Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := bundle.T("hi", "soilHealth.notAvailable"); got == "soilHealth.notAvailable" {
		t.Fatalf("expected hi translation, got key fallback")
	}
}
