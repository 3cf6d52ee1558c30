package vision

import (
	"context"
	"errors"
)

// Label is one classification result for a crop image.
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Object is one localized object detected in a crop image.
type Object struct {
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// Result mirrors the image_analysis_results payload shape: label and object
// lists plus an error string when analysis degraded.
type Result struct {
	DetectedLabels  []Label  `json:"detected_labels"`
	DetectedObjects []Object `json:"detected_objects"`
	Error           *string  `json:"error"`
}

// Analyzer detects labels and objects in a crop image and transcribes text
// from photographed or scanned soil reports.
type Analyzer interface {
	AnalyzeCropImage(ctx context.Context, data []byte, mimeType string) (Result, error)
	ExtractReportText(ctx context.Context, data []byte, mimeType string) (string, error)
	Enabled() bool
}

// Degraded builds a Result carrying only an error message. Analysis failures
// never fail the surrounding request; they surface here instead.
func Degraded(msg string) Result {
	return Result{
		DetectedLabels:  []Label{},
		DetectedObjects: []Object{},
		Error:           &msg,
	}
}

// Disabled is an Analyzer used when no vision backend is configured.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) AnalyzeCropImage(ctx context.Context, data []byte, mimeType string) (Result, error) {
	return Degraded("image analysis is not configured"), nil
}

func (Disabled) ExtractReportText(ctx context.Context, data []byte, mimeType string) (string, error) {
	return "", errors.New("image text extraction is not configured")
}
