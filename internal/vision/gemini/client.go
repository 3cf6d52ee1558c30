package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"agriboost-backend/internal/vision"
)

// Engine analyzes crop images with a Gemini vision model.
type Engine struct {
	APIKey string
	Model  string
}

// New constructs an Engine.
func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Enabled() bool { return e.APIKey != "" }

const analysisPrompt = `You are an agricultural image analysis module. Inspect the attached crop photo
and return strictly JSON with this shape, nothing else:
{"detected_labels":[{"label":"string","score":0.0}],"detected_objects":[{"object":"string","confidence":0.0}]}
Labels describe what the image shows (crop species, growth stage, visible disease or pest damage,
soil condition); scores and confidences are between 0 and 1 rounded to two decimals.`

// AnalyzeCropImage runs label and object detection over the image bytes.
func (e *Engine) AnalyzeCropImage(ctx context.Context, data []byte, mimeType string) (vision.Result, error) {
	if e.APIKey == "" {
		return vision.Result{}, errors.New("GEMINI_API_KEY is empty")
	}
	if len(data) == 0 {
		return vision.Result{}, errors.New("empty image payload")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return vision.Result{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return vision.Result{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(analysisPrompt),
		genai.ImageData(imageFormat(mimeType), data),
	)
	if err != nil {
		return vision.Result{}, err
	}

	raw := collectText(resp)
	if raw == "" {
		return vision.Result{}, errors.New("gemini: empty response")
	}

	var parsed struct {
		DetectedLabels  []vision.Label  `json:"detected_labels"`
		DetectedObjects []vision.Object `json:"detected_objects"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return vision.Result{}, fmt.Errorf("gemini: parse response: %w", err)
	}

	out := vision.Result{
		DetectedLabels:  parsed.DetectedLabels,
		DetectedObjects: parsed.DetectedObjects,
	}
	if out.DetectedLabels == nil {
		out.DetectedLabels = []vision.Label{}
	}
	if out.DetectedObjects == nil {
		out.DetectedObjects = []vision.Object{}
	}
	return out, nil
}

const ocrPrompt = `Transcribe all text visible in the attached document photo or scan.
Return the plain text only, preserving line breaks. Do not add commentary.`

// ExtractReportText transcribes a photographed or scanned soil report.
func (e *Engine) ExtractReportText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	if len(data) == 0 {
		return "", errors.New("empty image payload")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(ocrPrompt),
		genai.ImageData(imageFormat(mimeType), data),
	)
	if err != nil {
		return "", err
	}

	text := collectText(resp)
	if text == "" {
		return "", errors.New("gemini: no text detected in the image")
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

func imageFormat(mimeType string) string {
	clean := strings.ToLower(strings.TrimSpace(mimeType))
	clean = strings.TrimPrefix(clean, "image/")
	switch clean {
	case "jpg":
		return "jpeg"
	case "":
		return "jpeg"
	default:
		return clean
	}
}

func ptrFloat32(v float32) *float32 { return &v }

var _ vision.Analyzer = (*Engine)(nil)
