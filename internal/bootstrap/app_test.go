package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/shared/config"
)

const sampleReport = "Soil Health Card\npH: 6.8\nNitrogen (N): 120\nPhosphorus (P): 45\nPotassium (K): 200\nOrganic Carbon (OC): 0.6\n"

func buildTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		DefaultLocale:   "en",
		UploadRoute:     "/upload",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

type formField struct{ name, value string }
type formFile struct{ field, name, contentType, body string }

func multipartBody(t *testing.T, fields []formField, files []formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			t.Fatalf("WriteField %s: %v", f.name, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart %s: %v", f.field, err)
		}
		if _, err := io.WriteString(part, f.body); err != nil {
			t.Fatalf("write part %s: %v", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func farmFormFields() []formField {
	return []formField{
		{"village_city", "Nashik"},
		{"state", "Maharashtra"},
		{"land_size_acres", "4.5"},
		{"soil_type", "black"},
		{"crop_type", "wheat"},
		{"target_yield_quintals_per_acre", "20"},
		{"budget_rs", "50000"},
		{"irrigation_method", "drip"},
		{"fertilizer_use", "organic"},
	}
}

func do(app *App, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func sessionCookie(resp *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range resp.Result().Cookies() {
		if c.Name == "agriboost_session" {
			return c
		}
	}
	return nil
}

func TestAnalyzeThenResults(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := multipartBody(t, farmFormFields(), []formFile{
		{"soil_report_file", "report.txt", "text/plain", sampleReport},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-farm-data", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("analyze status %d: %s", resp.Code, resp.Body.String())
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("no session cookie issued")
	}

	var combined struct {
		SoilReportData map[string]*float64 `json:"soil_report_data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &combined); err != nil {
		t.Fatalf("decode analyze response: %v", err)
	}
	if ph := combined.SoilReportData["pH"]; ph == nil || *ph != 6.8 {
		t.Fatalf("unexpected pH %v", ph)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	req.Header.Set("X-Guest-Id", "test-guest")
	req.AddCookie(cookie)
	resp = do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("results status %d", resp.Code)
	}
	var view struct {
		State string `json:"state"`
		Soil  struct {
			PH       string `json:"ph"`
			Nitrogen string `json:"nitrogen"`
		} `json:"soil"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if view.State != "populated" {
		t.Fatalf("expected populated state, got %q", view.State)
	}
	if view.Soil.PH != "6.8" || view.Soil.Nitrogen != "120" {
		t.Fatalf("unexpected soil record %+v", view.Soil)
	}
}

func TestResultsEmptyWithoutAnalysis(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("results status %d", resp.Code)
	}
	var view struct {
		State       string `json:"state"`
		UploadRoute string `json:"uploadRoute"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if view.State != "empty" {
		t.Fatalf("expected empty state, got %q", view.State)
	}
	if view.UploadRoute != "/upload" {
		t.Fatalf("unexpected upload route %q", view.UploadRoute)
	}
}

func TestResultsPageRendersEmptyState(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	resp := do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("page status %d", resp.Code)
	}
	html := resp.Body.String()
	if !strings.Contains(html, `href="/upload"`) {
		t.Fatal("empty state is missing the upload link")
	}
	if !strings.Contains(html, "No analysis results found") {
		t.Fatal("empty state message not rendered")
	}
}

func TestTrayUploadThenAnalyzeWithoutFiles(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := multipartBody(t, nil, []formFile{
		{"file", "report.txt", "text/plain", sampleReport},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tray/soil-report", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := do(app, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("tray upload status %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tray", nil)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp = do(app, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("tray status %d", resp.Code)
	}
	var current struct {
		SoilReport *struct {
			FileName string `json:"fileName"`
		} `json:"soilReport"`
		CropImage any `json:"cropImage"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &current); err != nil {
		t.Fatalf("decode tray: %v", err)
	}
	if current.SoilReport == nil || current.SoilReport.FileName != "report.txt" {
		t.Fatalf("unexpected tray contents %s", resp.Body.String())
	}
	if current.CropImage != nil {
		t.Fatal("crop image slot should stay empty")
	}

	body, contentType = multipartBody(t, farmFormFields(), nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/analyze-farm-data", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp = do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("analyze from tray status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAnalyzeWithoutSoilReport(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := multipartBody(t, farmFormFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-farm-data", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := do(app, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAnalyzeRequiresIdentity(t *testing.T) {
	app := buildTestApp(t)

	body, contentType := multipartBody(t, farmFormFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-farm-data", body)
	req.Header.Set("Content-Type", contentType)
	resp := do(app, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := do(app, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("health status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health body %s", resp.Body.String())
	}
}
