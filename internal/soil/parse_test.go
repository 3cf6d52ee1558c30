package soil

import "testing"

func TestParseReportFullText(t *testing.T) {
	text := `Soil Health Card
pH: 6.8
Organic Carbon (OC): 0.6
Nitrogen (N): 120
Phosphorus (P) - 45
Potassium (K): 200
`
	m := ParseReport(text)

	want := map[string]float64{
		KeyPH:            6.8,
		KeyOrganicCarbon: 0.6,
		KeyNitrogen:      120,
		KeyPhosphorus:    45,
		KeyPotassium:     200,
	}
	for key, expected := range want {
		got := m[key]
		if got == nil {
			t.Fatalf("%s: expected %v, got nil", key, expected)
		}
		if *got != expected {
			t.Fatalf("%s: expected %v, got %v", key, expected, *got)
		}
	}
}

func TestParseReportPartialText(t *testing.T) {
	m := ParseReport("pH 7.2 and nothing else useful")

	if m[KeyPH] == nil || *m[KeyPH] != 7.2 {
		t.Fatalf("expected pH 7.2, got %v", m[KeyPH])
	}
	for _, key := range []string{KeyNitrogen, KeyPhosphorus, KeyPotassium, KeyOrganicCarbon} {
		if m[key] != nil {
			t.Fatalf("%s: expected nil, got %v", key, *m[key])
		}
	}
	if m.Found() != 1 {
		t.Fatalf("expected 1 metric found, got %d", m.Found())
	}
}

func TestParseReportCaseInsensitive(t *testing.T) {
	m := ParseReport("NITROGEN (N): 88")
	if m[KeyNitrogen] == nil || *m[KeyNitrogen] != 88 {
		t.Fatalf("expected case-insensitive match, got %v", m[KeyNitrogen])
	}
}

func TestParseReportEmptyText(t *testing.T) {
	m := ParseReport("")
	if len(m) != 5 {
		t.Fatalf("expected all five keys present, got %d", len(m))
	}
	if m.Found() != 0 {
		t.Fatalf("expected no metrics, got %d", m.Found())
	}
}

func TestEmptyHasAllKeys(t *testing.T) {
	m := Empty()
	for _, key := range []string{KeyPH, KeyNitrogen, KeyPhosphorus, KeyPotassium, KeyOrganicCarbon} {
		if _, ok := m[key]; !ok {
			t.Fatalf("missing key %s", key)
		}
	}
}
