package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"agriboost-backend/internal/soil"
	"agriboost-backend/internal/vision"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id,
    user_id,
    status,
    form_data,
    soil_report_data,
    image_analysis,
    soil_report_key,
    crop_image_key,
    error_message,
    created_at,
    completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	formJSON, err := json.Marshal(analysis.Form)
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}
	soilJSON, err := json.Marshal(analysis.SoilReportData)
	if err != nil {
		return fmt.Errorf("marshal soil report data: %w", err)
	}

	// image_analysis is nullable; a typed-nil []byte would bind as an
	// empty value instead of NULL, so the argument stays untyped.
	var imageJSON any
	if analysis.ImageAnalysis != nil {
		b, err := json.Marshal(analysis.ImageAnalysis)
		if err != nil {
			return fmt.Errorf("marshal image analysis: %w", err)
		}
		imageJSON = b
	}

	var soilKey, cropKey, errMsg sql.NullString
	if analysis.SoilReportKey != "" {
		soilKey = sql.NullString{String: analysis.SoilReportKey, Valid: true}
	}
	if analysis.CropImageKey != "" {
		cropKey = sql.NullString{String: analysis.CropImageKey, Valid: true}
	}
	if analysis.ErrorMessage != "" {
		errMsg = sql.NullString{String: analysis.ErrorMessage, Valid: true}
	}

	var completedAt sql.NullTime
	if analysis.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *analysis.CompletedAt, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.UserID,
		analysis.Status,
		formJSON,
		soilJSON,
		imageJSON,
		soilKey,
		cropKey,
		errMsg,
		analysis.CreatedAt,
		completedAt,
	)
	return err
}

// GetByID returns an analysis by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, status, form_data, soil_report_data, image_analysis, soil_report_key, crop_image_key, error_message, created_at, completed_at
FROM analyses
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	row := r.DB.QueryRowContext(ctx, query, analysisID, userID)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser returns analyses for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	const query = `
SELECT id, user_id, status, form_data, soil_report_data, image_analysis, soil_report_key, crop_image_key, error_message, created_at, completed_at
FROM analyses
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var analysis Analysis
	var formJSON, soilJSON []byte
	var imageJSON []byte
	var soilKey, cropKey, errMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.Status,
		&formJSON,
		&soilJSON,
		&imageJSON,
		&soilKey,
		&cropKey,
		&errMsg,
		&analysis.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Analysis{}, err
	}

	if len(formJSON) > 0 {
		if err := json.Unmarshal(formJSON, &analysis.Form); err != nil {
			return Analysis{}, fmt.Errorf("unmarshal form data: %w", err)
		}
	}
	analysis.SoilReportData = soil.Empty()
	if len(soilJSON) > 0 {
		if err := json.Unmarshal(soilJSON, &analysis.SoilReportData); err != nil {
			return Analysis{}, fmt.Errorf("unmarshal soil report data: %w", err)
		}
	}
	if len(imageJSON) > 0 {
		var result vision.Result
		if err := json.Unmarshal(imageJSON, &result); err != nil {
			return Analysis{}, fmt.Errorf("unmarshal image analysis: %w", err)
		}
		analysis.ImageAnalysis = &result
	}

	analysis.SoilReportKey = soilKey.String
	analysis.CropImageKey = cropKey.String
	analysis.ErrorMessage = errMsg.String
	if completedAt.Valid {
		t := completedAt.Time
		analysis.CompletedAt = &t
	}
	return analysis, nil
}
