// Package ocr extracts structured receipt data from images using the
// Gemini API. The model is asked for JSON matching a response schema, so
// the output lands directly in models.ParsedReceipt; the receipt package
// still validates it before use.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// Client parses a receipt image into structured data.
type Client interface {
	ParseReceipt(ctx context.Context, mimeType string, image []byte) (*models.ParsedReceipt, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const receiptPrompt = "Analyze this receipt image from Korea. The currency is KRW (Korean Won). " +
	"Extract all line items with their quantity and price. For each item, determine if it is " +
	"likely a shared dish (like an appetizer, pajeon, jjigae, etc.) or an individual dish " +
	"(like a personal drink or a single bowl of rice). Set the 'isLikelyShared' flag accordingly. " +
	"Also extract the total amount and, if present, the shop name, tax and tip. Provide the " +
	"output in the specified JSON format. All monetary values (price, total, tax, tip) must be " +
	"integers, without any decimal points."

// receiptSchema is the Gemini structured-output schema for a parsed receipt.
var receiptSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"items": map[string]any{
			"type":        "ARRAY",
			"description": "List of all items purchased from the receipt.",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"name":           map[string]any{"type": "STRING"},
					"quantity":       map[string]any{"type": "NUMBER"},
					"price":          map[string]any{"type": "NUMBER"},
					"isLikelyShared": map[string]any{"type": "BOOLEAN"},
				},
				"required": []string{"name", "quantity", "price", "isLikelyShared"},
			},
		},
		"total":    map[string]any{"type": "NUMBER"},
		"tax":      map[string]any{"type": "NUMBER"},
		"tip":      map[string]any{"type": "NUMBER"},
		"shopName": map[string]any{"type": "STRING"},
	},
	"required": []string{"items", "total"},
}

// Gemini is a Client backed by the Gemini generateContent REST API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a Gemini OCR client. model is the Gemini model name,
// e.g. "gemini-2.5-flash".
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ParseReceipt sends the image to Gemini and decodes the structured result.
func (g *Gemini) ParseReceipt(ctx context.Context, mimeType string, image []byte) (*models.ParsedReceipt, error) {
	if g.apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}

	payload := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"inline_data": map[string]any{
					"mime_type": mimeType,
					"data":      base64.StdEncoding.EncodeToString(image),
				}},
				{"text": receiptPrompt},
			},
		}},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   receiptSchema,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, raw)
	}

	// Gemini response envelope
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	var parsed models.ParsedReceipt
	if err := json.Unmarshal([]byte(result.Candidates[0].Content.Parts[0].Text), &parsed); err != nil {
		return nil, fmt.Errorf("gemini returned malformed receipt JSON: %w", err)
	}
	return &parsed, nil
}
