package analyses

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/server/middleware"
	"agriboost-backend/internal/shared/server/respond"
)

const maxAnalyzeBodySize = 25 << 20 // 25MB, soil report plus crop image

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-farm-data", h.analyze)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := session.IDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnalyzeBodySize)

	form, problems := bindForm(c)
	if len(problems) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form data", problems)
		return
	}

	soilFile, err := readFormFile(c, "soil_report_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read soil report file", nil)
		return
	}
	cropFile, err := readFormFile(c, "crop_image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read crop image", nil)
		return
	}

	analysis, combined, err := h.Svc.Analyze(c.Request.Context(), userID, sessionID, Input{
		Form:       form,
		SoilReport: soilFile,
		CropImage:  cropFile,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSoilReport):
			respond.Error(c, http.StatusBadRequest, "validation_error", "soil report file is required", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze farm data", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.OK(c, combined)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{"analyses": list})
}

func bindForm(c *gin.Context) (FormData, []map[string]string) {
	var problems []map[string]string

	requireString := func(field string) string {
		val := strings.TrimSpace(c.PostForm(field))
		if val == "" {
			problems = append(problems, map[string]string{"field": field, "issue": "required"})
		}
		return val
	}
	requireFloat := func(field string) float64 {
		raw := strings.TrimSpace(c.PostForm(field))
		if raw == "" {
			problems = append(problems, map[string]string{"field": field, "issue": "required"})
			return 0
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			problems = append(problems, map[string]string{"field": field, "issue": "must be a number"})
			return 0
		}
		return val
	}
	requireInt := func(field string) int64 {
		raw := strings.TrimSpace(c.PostForm(field))
		if raw == "" {
			problems = append(problems, map[string]string{"field": field, "issue": "required"})
			return 0
		}
		val, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			problems = append(problems, map[string]string{"field": field, "issue": "must be an integer"})
			return 0
		}
		return val
	}

	form := FormData{
		LocationLandDetails: LocationLandDetails{
			VillageCity:   requireString("village_city"),
			State:         requireString("state"),
			LandSizeAcres: requireFloat("land_size_acres"),
			SoilType:      requireString("soil_type"),
		},
		CropInformation: CropInformation{
			CropType:                   requireString("crop_type"),
			TargetYieldQuintalsPerAcre: requireFloat("target_yield_quintals_per_acre"),
			BudgetRs:                   requireInt("budget_rs"),
		},
		FarmingPractices: FarmingPractices{
			IrrigationMethod: requireString("irrigation_method"),
			FertilizerUse:    requireString("fertilizer_use"),
		},
	}

	if raw := strings.TrimSpace(c.PostForm("previous_yield_quintals_per_acre")); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			form.CropInformation.PreviousYieldQuintalsPerAcre = &val
		} else {
			problems = append(problems, map[string]string{"field": "previous_yield_quintals_per_acre", "issue": "must be a number"})
		}
	}
	if raw := strings.TrimSpace(c.PostForm("current_pest_issues")); raw != "" {
		form.FarmingPractices.CurrentPestIssues = &raw
	}

	return form, problems
}

func readFormFile(c *gin.Context, field string) (*FilePayload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// A form without a multipart body has no files either.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return payloadFromHeader(fileHeader)
}

func payloadFromHeader(fh *multipart.FileHeader) (*FilePayload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return &FilePayload{
		FileName: fh.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
