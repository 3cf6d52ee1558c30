package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"agriboost-backend/internal/extract"
	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/metrics"
	"agriboost-backend/internal/shared/storage/object"
	"agriboost-backend/internal/shared/telemetry"
	"agriboost-backend/internal/soil"
	"agriboost-backend/internal/tray"
	"agriboost-backend/internal/vision"
)

// The original upload contract is PDF/JPEG/PNG/JPG. text/plain is a
// deliberate widening: a report already reduced to text skips extraction
// but flows through the same parser.
var allowedSoilReportTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"text/plain":      {},
}

// FilePayload is an in-memory uploaded file.
type FilePayload struct {
	FileName string
	MimeType string
	Data     []byte
}

// Input carries everything the analyze operation needs. Nil file fields fall
// back to the matching tray slot.
type Input struct {
	Form       FormData
	SoilReport *FilePayload
	CropImage  *FilePayload
}

// Service contains business logic for farm analyses.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Tray     *tray.Service
	Vision   vision.Analyzer
	Sessions *session.Store
}

// Analyze parses the soil report, optionally analyzes the crop image,
// persists the run and writes the combined payload into the session under
// the analysisResults key. Parse and vision failures degrade the result;
// they never fail the request.
func (s *Service) Analyze(ctx context.Context, userID, sessionID string, in Input) (Analysis, CombinedResult, error) {
	started := time.Now()
	metrics.IncAnalysisStarted()

	soilPayload, soilKey, err := s.resolveSoilReport(ctx, userID, in.SoilReport)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, CombinedResult{}, err
	}

	cropPayload, cropKey, err := s.resolveCropImage(ctx, userID, in.CropImage)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, CombinedResult{}, err
	}

	soilMetrics := s.parseSoilReport(ctx, soilPayload)

	var imageResult *vision.Result
	if cropPayload != nil {
		result := s.analyzeCropImage(ctx, cropPayload)
		imageResult = &result
	}

	now := time.Now().UTC()
	analysis := Analysis{
		ID:             uuid.NewString(),
		UserID:         userID,
		Status:         StatusCompleted,
		Form:           in.Form,
		SoilReportData: soilMetrics,
		ImageAnalysis:  imageResult,
		SoilReportKey:  soilKey,
		CropImageKey:   cropKey,
		CreatedAt:      now,
		CompletedAt:    &now,
	}

	combined := CombinedResult{
		FormData:             in.Form,
		SoilReportData:       soilMetrics,
		ImageAnalysisResults: imageResult,
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, CombinedResult{}, err
	}

	if sessionID != "" && s.Sessions != nil {
		payload, err := json.Marshal(combined)
		if err != nil {
			metrics.IncAnalysisFailed()
			return Analysis{}, CombinedResult{}, fmt.Errorf("marshal combined result: %w", err)
		}
		s.Sessions.Set(sessionID, session.KeyAnalysisResults, string(payload))
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":   analysis.ID,
		"user_id":       userID,
		"metrics_found": soilMetrics.Found(),
		"has_image":     imageResult != nil,
	})

	return analysis, combined, nil
}

// Get returns an analysis by ID for a user.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if userID == "" || analysisID == "" {
		return Analysis{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns analyses for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) resolveSoilReport(ctx context.Context, userID string, direct *FilePayload) (*FilePayload, string, error) {
	if direct != nil {
		if err := validateSoilReportType(direct.MimeType); err != nil {
			return nil, "", err
		}
		ref, err := s.Tray.PutSoilReport(ctx, userID, direct.FileName, bytes.NewReader(direct.Data))
		if err != nil {
			return nil, "", err
		}
		return direct, ref.StorageKey, nil
	}

	slot := s.Tray.Current(userID).SoilReport
	if slot == nil {
		return nil, "", ErrNoSoilReport
	}
	if err := validateSoilReportType(slot.MimeType); err != nil {
		return nil, "", err
	}
	payload, err := s.loadFromStore(ctx, slot)
	if err != nil {
		return nil, "", err
	}
	return payload, slot.StorageKey, nil
}

func (s *Service) resolveCropImage(ctx context.Context, userID string, direct *FilePayload) (*FilePayload, string, error) {
	if direct != nil {
		if !extract.IsImage(direct.MimeType) {
			return nil, "", fmt.Errorf("%w: crop image must be an image file", ErrInvalidInput)
		}
		ref, err := s.Tray.PutCropImage(ctx, userID, direct.FileName, bytes.NewReader(direct.Data))
		if err != nil {
			return nil, "", err
		}
		return direct, ref.StorageKey, nil
	}

	slot := s.Tray.Current(userID).CropImage
	if slot == nil {
		return nil, "", nil
	}
	if !extract.IsImage(slot.MimeType) {
		return nil, "", fmt.Errorf("%w: crop image must be an image file", ErrInvalidInput)
	}
	payload, err := s.loadFromStore(ctx, slot)
	if err != nil {
		return nil, "", err
	}
	return payload, slot.StorageKey, nil
}

func (s *Service) loadFromStore(ctx context.Context, ref *tray.FileRef) (*FilePayload, error) {
	body, err := s.Store.Open(ctx, ref.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open tray file %s: %w", ref.ID, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read tray file %s: %w", ref.ID, err)
	}
	return &FilePayload{FileName: ref.FileName, MimeType: ref.MimeType, Data: data}, nil
}

// parseSoilReport extracts text from the report and scans it for metrics.
// Any failure collapses to the all-nil metric set, mirroring how absent
// fields render as "not available" downstream.
func (s *Service) parseSoilReport(ctx context.Context, payload *FilePayload) soil.Metrics {
	var (
		text string
		err  error
	)
	if extract.IsImage(payload.MimeType) {
		text, err = s.Vision.ExtractReportText(ctx, payload.Data, payload.MimeType)
	} else {
		text, err = extract.ExtractTextFromBytes(ctx, payload.Data, payload.MimeType, payload.FileName)
	}
	if err != nil {
		metrics.IncSoilParseFailed()
		telemetry.Warn("soil.parse.degraded", map[string]any{
			"file_name": payload.FileName,
			"mime_type": payload.MimeType,
			"err":       err.Error(),
		})
		return soil.Empty()
	}

	parsed := soil.ParseReport(text)
	if parsed.Found() == 0 {
		metrics.IncSoilParseFailed()
	}
	return parsed
}

func (s *Service) analyzeCropImage(ctx context.Context, payload *FilePayload) vision.Result {
	result, err := s.Vision.AnalyzeCropImage(ctx, payload.Data, payload.MimeType)
	if err != nil {
		telemetry.Warn("vision.analyze.degraded", map[string]any{
			"file_name": payload.FileName,
			"err":       err.Error(),
		})
		return vision.Degraded(err.Error())
	}
	return result
}

func validateSoilReportType(mimeType string) error {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if _, ok := allowedSoilReportTypes[clean]; !ok {
		return fmt.Errorf("%w: soil report must be a PDF, JPEG, PNG or JPG image, or plain text", ErrInvalidInput)
	}
	return nil
}

