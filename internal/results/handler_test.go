package results

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/i18n"
	"agriboost-backend/internal/session"
)

func newTestHandler(t *testing.T) (*Handler, *session.Store, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle, err := i18n.Load("en")
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	sessions := session.NewStore(time.Hour)
	h, err := NewHandler(sessions, bundle, "/upload")
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	r := gin.New()
	r.Use(session.Middleware())
	h.RegisterPage(r)
	api := r.Group("/api/v1")
	h.RegisterAPI(api)
	return h, sessions, r
}

func TestPageRendersSoilMetrics(t *testing.T) {
	_, sessions, r := newTestHandler(t)
	sessions.Set("sess-1", session.KeyAnalysisResults,
		`{"soil_report_data":{"pH":6.8,"Nitrogen (kg/ha)":120}}`)

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sess-1"})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status %d", resp.Code)
	}
	html := resp.Body.String()
	for _, want := range []string{"6.8", "120", "Not Available", "Soil pH", "Fertilizer Plan", `href="/upload"`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPageHindiLocale(t *testing.T) {
	_, sessions, r := newTestHandler(t)
	sessions.Set("sess-1", session.KeyAnalysisResults, `{"soil_report_data":{"pH":6.8}}`)

	req := httptest.NewRequest(http.MethodGet, "/results?lang=hi", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sess-1"})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "मिट्टी") {
		t.Fatal("expected Hindi soil health heading")
	}
}

func TestAPIStateTransitions(t *testing.T) {
	_, sessions, r := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sess-1"})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if !strings.Contains(resp.Body.String(), `"state":"empty"`) {
		t.Fatalf("expected empty state, got %s", resp.Body.String())
	}

	sessions.Set("sess-1", session.KeyAnalysisResults, `{"soil_report_data":{"pH":6.8}}`)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if !strings.Contains(resp.Body.String(), `"state":"populated"`) {
		t.Fatalf("expected populated state, got %s", resp.Body.String())
	}
}
