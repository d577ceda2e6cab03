// Package ai provides the Gemini-backed inventory analysis adapter.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"makhzan/internal/domain/ledger"
	"makhzan/pkg/logger"
)

const (
	defaultModel = "gemini-3-flash-preview"
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("ai: api key not configured")

// GeminiService calls the Gemini generateContent API to produce a
// natural-language analysis of the current stock balances.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService creates the adapter. An empty model selects the default.
func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = defaultModel
	}
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Enabled reports whether the adapter has credentials.
func (s *GeminiService) Enabled() bool {
	return s.apiKey != ""
}

type materialSummary struct {
	Name  string `json:"name"`
	Stock string `json:"stock"`
	Unit  string `json:"unit"`
	In    string `json:"in"`
	Out   string `json:"out"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends the report summary to Gemini and returns the Arabic
// analysis text.
func (s *GeminiService) Analyze(ctx context.Context, reports []ledger.MaterialReport) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	summary := make([]materialSummary, 0, len(reports))
	for _, r := range reports {
		summary = append(summary, materialSummary{
			Name:  r.Name,
			Stock: r.CurrentStock.String(),
			Unit:  r.Unit,
			In:    r.TotalIn.String(),
			Out:   r.TotalOut.String(),
		})
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	prompt := fmt.Sprintf(
		"أنت مساعد ذكي لإدارة المخازن. قم بتحليل بيانات المخزون التالية وقدم ملخصاً موجزاً باللغة العربية "+
			"يتضمن: الأصناف الأكثر حركة، الأصناف التي توشك على النفاد، وتوصيات لإعادة الطلب.\n\nبيانات المخزون:\n%s",
		data)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{Temperature: 0.7},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if out.Error != nil {
		logger.Warn(ctx, "gemini returned error", "code", out.Error.Code, "message", out.Error.Message)
		return "", fmt.Errorf("gemini error %d: %s", out.Error.Code, out.Error.Message)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
